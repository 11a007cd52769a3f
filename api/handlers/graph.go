// ABOUTME: Graph handlers for the Huma API
// ABOUTME: Serves user graphs as JSON or rendered HTML and builds graphs from posted corpora

package handlers

import (
	"bytes"
	"context"
	"net/http"

	"kgraph-api/api/dto/mappers"
	"kgraph-api/api/dto/requests"
	"kgraph-api/core/corpus"
	"kgraph-api/core/domain"
	"kgraph-api/core/export"
	"kgraph-api/core/interfaces"
	"kgraph-api/core/pipeline"

	"github.com/danielgtaylor/huma/v2"
)

// GraphService interface defines the methods needed from the pipeline service
type GraphService interface {
	Generate(ctx context.Context, req pipeline.Request) (*export.Document, error)
	FromCorpus(ctx context.Context, c *domain.Corpus, opts pipeline.Options) (*export.Document, error)
}

// GraphDefaults are applied when a request leaves a value unset
type GraphDefaults struct {
	// Isolate forces per-article deduplication for every request
	Isolate bool

	// MaxArticles is used when limit is 0
	MaxArticles int
}

// GraphHandler handles graph-related HTTP requests
type GraphHandler struct {
	service   GraphService
	publisher interfaces.Publisher
	logger    interfaces.Logger
	defaults  GraphDefaults
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(service GraphService, logger interfaces.Logger, defaults GraphDefaults) *GraphHandler {
	return &GraphHandler{
		service:  service,
		logger:   logger,
		defaults: defaults,
	}
}

// SetPublisher enables ?publish=true on the HTML endpoint
func (h *GraphHandler) SetPublisher(publisher interfaces.Publisher) {
	h.publisher = publisher
}

// RegisterRoutes registers all graph routes
func (h *GraphHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getUserGraph",
		Method:      http.MethodGet,
		Path:        "/users/{username}/graph",
		Summary:     "Build a user's citation graph",
		Description: "Loads the user's articles from their feed and returns article and domain nodes with citation edges",
		Tags:        []string{"Graph"},
	}, h.GetUserGraph)

	huma.Register(api, huma.Operation{
		OperationID: "getUserGraphHTML",
		Method:      http.MethodGet,
		Path:        "/users/{username}/graph.html",
		Summary:     "Render a user's citation graph",
		Description: "Returns a standalone HTML page drawing the graph with vis-network",
		Tags:        []string{"Graph"},
	}, h.GetUserGraphHTML)

	huma.Register(api, huma.Operation{
		OperationID:   "buildGraph",
		Method:        http.MethodPost,
		Path:          "/graph",
		Summary:       "Build a graph from an inline corpus",
		Description:   "Builds the citation graph of the articles in the request body without fetching anything",
		Tags:          []string{"Graph"},
		DefaultStatus: http.StatusOK,
	}, h.BuildGraph)
}

// UserGraphInput defines the input for the user graph operations
type UserGraphInput struct {
	Username string `path:"username" minLength:"1" maxLength:"100" doc:"Author handle, with or without a leading @"`
	Isolate  bool   `query:"isolate" doc:"Deduplicate domains per article instead of globally"`
	Limit    int    `query:"limit" minimum:"0" maximum:"1000" doc:"Maximum number of articles; 0 uses the server default"`
}

// UserGraphHTMLInput defines the input for the HTML graph operation
type UserGraphHTMLInput struct {
	Username string `path:"username" minLength:"1" maxLength:"100" doc:"Author handle, with or without a leading @"`
	Isolate  bool   `query:"isolate" doc:"Deduplicate domains per article instead of globally"`
	Limit    int    `query:"limit" minimum:"0" maximum:"1000" doc:"Maximum number of articles; 0 uses the server default"`
	Publish  bool   `query:"publish" doc:"Also store the rendered page with the configured publisher"`
}

// GraphOutput defines the output of JSON graph operations
type GraphOutput struct {
	Body *export.Document
}

// GraphHTMLOutput defines the output of the HTML graph operation
type GraphHTMLOutput struct {
	ContentType string `header:"Content-Type"`
	Location    string `header:"Content-Location"`
	Body        []byte
}

// BuildGraphInput defines the input for the BuildGraph operation
type BuildGraphInput struct {
	Body requests.BuildGraphRequest
}

func (h *GraphHandler) request(username string, isolate bool, limit int) pipeline.Request {
	if limit == 0 {
		limit = h.defaults.MaxArticles
	}
	return pipeline.Request{
		Username:    username,
		Isolate:     isolate || h.defaults.Isolate,
		MaxArticles: limit,
	}
}

// GetUserGraph handles GET /users/{username}/graph
func (h *GraphHandler) GetUserGraph(ctx context.Context, input *UserGraphInput) (*GraphOutput, error) {
	doc, err := h.service.Generate(ctx, h.request(input.Username, input.Isolate, input.Limit))
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GraphOutput{Body: doc}, nil
}

// GetUserGraphHTML handles GET /users/{username}/graph.html
func (h *GraphHandler) GetUserGraphHTML(ctx context.Context, input *UserGraphHTMLInput) (*GraphHTMLOutput, error) {
	if input.Publish && h.publisher == nil {
		return nil, huma.Error400BadRequest("publishing is not configured")
	}

	doc, err := h.service.Generate(ctx, h.request(input.Username, input.Isolate, input.Limit))
	if err != nil {
		return nil, toHumaError(err)
	}

	var buf bytes.Buffer
	if err := export.RenderHTML(&buf, doc); err != nil {
		return nil, huma.Error500InternalServerError("failed to render graph", err)
	}

	out := &GraphHTMLOutput{
		ContentType: "text/html; charset=utf-8",
		Body:        buf.Bytes(),
	}

	if input.Publish {
		name := export.FileName(doc.Username, doc.Isolate)
		location, err := h.publisher.Publish(ctx, name, "text/html", bytes.NewReader(out.Body))
		if err != nil {
			h.logger.Error("Failed to publish graph", map[string]interface{}{
				"username": doc.Username,
				"name":     name,
				"error":    err.Error(),
			})
			return nil, huma.Error502BadGateway("failed to publish graph", err)
		}
		h.logger.Info("Published graph", map[string]interface{}{
			"username": doc.Username,
			"location": location,
		})
		out.Location = location
	}

	return out, nil
}

// BuildGraph handles POST /graph
func (h *GraphHandler) BuildGraph(ctx context.Context, input *BuildGraphInput) (*GraphOutput, error) {
	input.Body.ApplyDefaults()

	c := mappers.ToCorpus(&input.Body)
	if err := corpus.Normalize(c); err != nil {
		return nil, toHumaError(err)
	}

	doc, err := h.service.FromCorpus(ctx, c, pipeline.Options{
		Isolate:    input.Body.Isolate || h.defaults.Isolate,
		Exclusions: input.Body.Exclusions,
	})
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GraphOutput{Body: doc}, nil
}
