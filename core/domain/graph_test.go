package domain

import "testing"

func TestDomainNode_MergeGrowsAndSaturates(t *testing.T) {
	node := NewDomainNode(FirstDomainID, "blog.example.com", "a|https://blog.example.com/p1")

	if node.Counter != 1 || node.Size != DomainNodeMinSize {
		t.Fatalf("new node = counter %d size %d, want 1 and %d", node.Counter, node.Size, DomainNodeMinSize)
	}

	node.Merge("b|https://blog.example.com/p2")
	if node.Counter != 2 || node.Size != 12 {
		t.Errorf("after one merge = counter %d size %d, want 2 and 12", node.Counter, node.Size)
	}

	for i := 0; i < 28; i++ {
		node.Merge("b|https://blog.example.com/p2")
	}
	if node.Counter != 30 {
		t.Errorf("Counter = %d, want 30", node.Counter)
	}
	if node.Size != DomainNodeMaxSize {
		t.Errorf("Size = %d, want %d", node.Size, DomainNodeMaxSize)
	}
	if len(node.URLs) != 2 {
		t.Errorf("URLs = %v, want 2 distinct descriptors", node.URLs)
	}
}

func TestDomainNode_Label(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		merges   int
		expected string
	}{
		{name: "single occurrence", domain: "example.com", merges: 0, expected: "example.com"},
		{name: "www prefix stripped", domain: "www.example.com", merges: 0, expected: "example.com"},
		{name: "counter suffix after merge", domain: "www.example.com", merges: 2, expected: "example.com|3"},
		{name: "inner www kept", domain: "docs.www.example.com", merges: 0, expected: "docs.www.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := NewDomainNode(FirstDomainID, tt.domain, "x|y")
			for i := 0; i < tt.merges; i++ {
				node.Merge("x|y")
			}
			if got := node.Label(); got != tt.expected {
				t.Errorf("Label() = %q, want %q", got, tt.expected)
			}
			if node.Domain != tt.domain {
				t.Errorf("Domain = %q, identity must keep the raw network location %q", node.Domain, tt.domain)
			}
		})
	}
}

func TestEdge_KeyIsOrientationFree(t *testing.T) {
	a := Edge{From: 2, To: 1, Color: EdgeKnown}
	b := Edge{From: 1, To: 2, Color: EdgeKnown}

	if a.Key() != b.Key() {
		t.Errorf("Key() differs for reversed edges: %v vs %v", a.Key(), b.Key())
	}
	if a.IsSelfLoop() {
		t.Error("IsSelfLoop() = true for distinct endpoints")
	}
	if !(Edge{From: 3, To: 3}).IsSelfLoop() {
		t.Error("IsSelfLoop() = false for identical endpoints")
	}
}

func TestArticleNode_FixedAttributes(t *testing.T) {
	var n Node = &ArticleNode{ID: 1, Title: "Hello"}

	if n.Kind() != KindArticle {
		t.Errorf("Kind() = %v, want %v", n.Kind(), KindArticle)
	}
	article := n.(*ArticleNode)
	if article.Size() != ArticleNodeSize || !article.Main() {
		t.Errorf("article attributes = size %d main %v, want %d true", article.Size(), article.Main(), ArticleNodeSize)
	}
}

func TestCorpus_Truncate(t *testing.T) {
	corpus := Corpus{Articles: []Article{{URL: "https://a/1"}, {URL: "https://a/2"}, {URL: "https://a/3"}}}

	corpus.Truncate(0)
	if len(corpus.Articles) != 3 {
		t.Errorf("Truncate(0) kept %d articles, want 3", len(corpus.Articles))
	}

	corpus.Truncate(2)
	if len(corpus.Articles) != 2 || corpus.Articles[1].URL != "https://a/2" {
		t.Errorf("Truncate(2) = %v, want first two articles", corpus.Articles)
	}
}

func TestLink_Descriptor(t *testing.T) {
	link := Link{Text: "t1", Href: "https://example.com/x"}
	if got := link.Descriptor(); got != "t1|https://example.com/x" {
		t.Errorf("Descriptor() = %q", got)
	}
}
