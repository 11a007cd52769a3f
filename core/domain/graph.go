// ABOUTME: Graph domain model with article and domain node variants and citation edges
// ABOUTME: Encodes the identity and growth rules that the link graph builder relies on

package domain

import (
	"strconv"
	"strings"
)

// NodeKind distinguishes the two node variants
type NodeKind string

const (
	// KindArticle marks a node created from a corpus article
	KindArticle NodeKind = "article"

	// KindDomain marks a node created from an external network location
	KindDomain NodeKind = "domain"
)

const (
	// FirstDomainID is the first id handed out to domain nodes; article ids stay below it
	FirstDomainID = 100001

	// ArticleNodeSize is the fixed size of article nodes
	ArticleNodeSize = 30

	// DomainNodeMinSize is the size of a freshly created domain node
	DomainNodeMinSize = 10

	// DomainNodeMaxSize caps domain node growth
	DomainNodeMaxSize = 50

	// DomainNodeGrowth is added to a domain node's size per merged occurrence
	DomainNodeGrowth = 2
)

// Node is either an *ArticleNode or a *DomainNode
type Node interface {
	NodeID() int
	Kind() NodeKind
	Label() string
	isNode()
}

// ArticleNode is the graph node for one corpus article
type ArticleNode struct {
	ID       int
	Title    string
	Subtitle string
	URL      string
	Slug     string
}

// NodeID returns the article sequence number
func (n *ArticleNode) NodeID() int { return n.ID }

// Kind returns KindArticle
func (n *ArticleNode) Kind() NodeKind { return KindArticle }

// Label returns the article title
func (n *ArticleNode) Label() string { return n.Title }

// Size is fixed for articles
func (n *ArticleNode) Size() int { return ArticleNodeSize }

// Main reports whether the node is a corpus article
func (n *ArticleNode) Main() bool { return true }

func (n *ArticleNode) isNode() {}

// DomainNode is the graph node for an external network location within one dedup scope
type DomainNode struct {
	ID      int
	Domain  string
	Counter int
	Size    int
	URLs    []string

	// Description is the anchor text of the first link that created the node
	Description string

	seen map[string]struct{}
}

// NewDomainNode creates a domain node for its first link occurrence
func NewDomainNode(id int, domain string, descriptor string) *DomainNode {
	n := &DomainNode{
		ID:      id,
		Domain:  domain,
		Counter: 1,
		Size:    DomainNodeMinSize,
		seen:    make(map[string]struct{}),
	}
	n.addURL(descriptor)
	return n
}

// Merge records one more occurrence of the domain
func (n *DomainNode) Merge(descriptor string) {
	n.Counter++
	if n.Size <= DomainNodeMaxSize-DomainNodeGrowth {
		n.Size += DomainNodeGrowth
	}
	n.addURL(descriptor)
}

func (n *DomainNode) addURL(descriptor string) {
	if n.seen == nil {
		n.seen = make(map[string]struct{}, len(n.URLs))
		for _, u := range n.URLs {
			n.seen[u] = struct{}{}
		}
	}
	if _, ok := n.seen[descriptor]; ok {
		return
	}
	n.seen[descriptor] = struct{}{}
	n.URLs = append(n.URLs, descriptor)
}

// NodeID returns the domain node id
func (n *DomainNode) NodeID() int { return n.ID }

// Kind returns KindDomain
func (n *DomainNode) Kind() NodeKind { return KindDomain }

// DisplayDomain is the domain with a leading "www." removed
func (n *DomainNode) DisplayDomain() string {
	return strings.TrimPrefix(n.Domain, "www.")
}

// Label is the display domain, suffixed with "|<counter>" once the node has merged occurrences
func (n *DomainNode) Label() string {
	if n.Counter <= 1 {
		return n.DisplayDomain()
	}
	return n.DisplayDomain() + "|" + strconv.Itoa(n.Counter)
}

// Main reports whether the node is a corpus article
func (n *DomainNode) Main() bool { return false }

func (n *DomainNode) isNode() {}

// EdgeColor classifies an edge by the kind of its source node
type EdgeColor string

const (
	// EdgeKnown is an edge whose source is an article
	EdgeKnown EdgeColor = "known"

	// EdgeUnknown is an edge whose source is a domain
	EdgeUnknown EdgeColor = "unknown"
)

// Edge is a citation from a source node to the article that contains the link
type Edge struct {
	From  int
	To    int
	Color EdgeColor
}

// EdgeKey is the orientation-free identity of an edge
type EdgeKey struct {
	Low  int
	High int
}

// Key returns the unordered endpoint pair of the edge
func (e Edge) Key() EdgeKey {
	if e.From <= e.To {
		return EdgeKey{Low: e.From, High: e.To}
	}
	return EdgeKey{Low: e.To, High: e.From}
}

// IsSelfLoop reports whether both endpoints are the same node
func (e Edge) IsSelfLoop() bool {
	return e.From == e.To
}
