// Package core contains the business logic of the knowledge graph service.
// It does not depend on the HTTP framework or on concrete infrastructure.
//
// The core package is organized into several sub-packages:
//
// - domain: articles, corpora and the graph node/edge model
// - linkgraph: URL normalization, link classification and the graph builder
// - corpus: loads corpora from a writer's feed or from JSON/YAML files
// - pipeline: corpus to graph document, with metrics and logging
// - export: graph documents and the HTML renderer
// - errors: typed errors mapped to HTTP statuses by the API
// - interfaces: contracts for cache, HTTP, logging, metrics and publishing
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      cache,
//	    HTTPClient: httpClient,
//	    Logger:     logger,
//	}
//	provider := corpus.NewService(deps, corpus.DefaultConfig())
//	svc, err := pipeline.NewService(deps, provider, pipeline.Config{Workers: 8})
//	if err != nil {
//	    return err
//	}
//	doc, err := svc.Generate(ctx, pipeline.Request{Username: "justdataplease", MaxArticles: 10})
//
// Builds are deterministic: the same corpus and options always produce the
// same node ids, sizes, labels and edge order.
package core
