// ABOUTME: Response DTOs for service status endpoints
// ABOUTME: Health reports liveness and the enabled feature flags

package responses

import "time"

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string          `json:"status" doc:"Always ok while the process serves requests"`
	Version  string          `json:"version" doc:"API version"`
	Time     time.Time       `json:"time" doc:"Server time"`
	Features map[string]bool `json:"features,omitempty" doc:"Feature flag states"`
}
