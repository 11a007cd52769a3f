// Package api provides the HTTP API layer for the knowledge graph service.
// It uses the Huma framework on a chi router to provide OpenAPI documentation,
// request validation, and a clean handler interface.
//
// # Architecture
//
// - server.go: Huma API configuration, CORS and middleware chain
// - handlers/: graph, health and error mapping
// - dto/: request and response bodies plus their mappers
// - middleware/: request logging, per-IP rate limiting and HTTP metrics
//
// # Endpoints
//
//	GET  /users/{username}/graph       graph document as JSON
//	GET  /users/{username}/graph.html  rendered vis-network page
//	POST /graph                        graph of a corpus sent in the body
//	GET  /health                       liveness
//	GET  /metrics                      Prometheus exposition (mounted on the router)
//
// The OpenAPI spec is served at /openapi.json and the docs UI at /docs.
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:     logger,
//	    Metrics:    collector,
//	    RateLimit:  60,
//	    RateWindow: time.Minute,
//	})
//	handlers.NewGraphHandler(pipelineService, logger).RegisterRoutes(humaAPI)
//	router.Handle("/metrics", collector.Handler())
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// Domain errors from core/errors are mapped to RFC 7807 problem responses:
// NotFoundError to 404, ValidationError to 400, ParseError to 502, and
// ExternalAPIError according to the upstream status.
package api
