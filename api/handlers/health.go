// ABOUTME: Health handler for the Huma API
// ABOUTME: Reports liveness and the current feature flag states

package handlers

import (
	"context"
	"net/http"
	"time"

	"kgraph-api/api/dto/responses"
	"kgraph-api/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
)

// HealthHandler serves GET /health
type HealthHandler struct {
	version string
	flags   featureflags.Manager
}

// NewHealthHandler creates a health handler; flags may be nil
func NewHealthHandler(version string, flags featureflags.Manager) *HealthHandler {
	return &HealthHandler{version: version, flags: flags}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Status"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{
		Body: responses.HealthResponse{
			Status:  "ok",
			Version: h.version,
			Time:    time.Now().UTC(),
		},
	}

	if h.flags != nil {
		out.Body.Features = make(map[string]bool)
		for flag, enabled := range h.flags.GetAllFlags() {
			out.Body.Features[string(flag)] = enabled
		}
	}

	return out, nil
}
