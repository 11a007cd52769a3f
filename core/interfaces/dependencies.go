// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Groups the collaborators shared by the corpus provider and the graph pipeline

package interfaces

// Dependencies holds all external dependencies required by the core services
type Dependencies struct {
	// Cache stores fetched corpora; nil disables caching
	Cache Cache

	// HTTPClient fetches feeds and article pages
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Metrics records build statistics; nil disables metrics
	Metrics Metrics
}
