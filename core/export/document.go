// ABOUTME: Graph document model handed to renderers and API clients
// ABOUTME: Maps builder results to node and edge records with their display attributes

package export

import (
	"strings"

	"kgraph-api/core/domain"
	"kgraph-api/core/linkgraph"
)

// Display attributes of the rendered graph
const (
	ArticleShape      = "star"
	ArticleColor      = "#fdfd96"
	ArticleLabelRunes = 20
	ArticleFontColor  = "#000000"
	ArticleFontSize   = 20

	DomainShape = "dot"

	KnownEdgeColor       = "#A7C7E7"
	KnownEdgeHighlight   = "#3c82ca"
	UnknownEdgeColor     = "#dbd7d7"
	UnknownEdgeHighlight = "#9a8f8f"
	EdgeFontColor        = "#808080"
	EdgeFontSize         = 10
)

// Font is a label font
type Font struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// EdgeColor holds the normal and highlighted edge colors
type EdgeColor struct {
	Color     string `json:"color"`
	Highlight string `json:"highlight"`
}

// NodeRecord is one node of the exported graph
type NodeRecord struct {
	ID          int      `json:"id"`
	Kind        string   `json:"kind"`
	Shape       string   `json:"shape"`
	Color       string   `json:"color,omitempty"`
	Label       string   `json:"label"`
	MainTitle   string   `json:"main_title,omitempty"`
	Size        int      `json:"size"`
	URL         string   `json:"url"`
	Domain      string   `json:"domain"`
	Description string   `json:"description"`
	URLs        []string `json:"urls"`
	Main        int      `json:"main"`
	Counter     int      `json:"counter"`
	Font        *Font    `json:"font,omitempty"`
}

// EdgeRecord is one citation of the exported graph
type EdgeRecord struct {
	From       int       `json:"from"`
	To         int       `json:"to"`
	ColorClass string    `json:"color_class"`
	Color      EdgeColor `json:"color"`
	Font       Font      `json:"font"`
}

// Stats summarises a build
type Stats struct {
	Articles   int            `json:"articles"`
	Domains    int            `json:"domains"`
	Edges      int            `json:"edges"`
	Dropped    map[string]int `json:"dropped"`
	Collisions int            `json:"slug_collisions"`
}

// Document is the exported graph with the author profile
type Document struct {
	Username    string       `json:"username,omitempty"`
	Isolate     bool         `json:"isolate"`
	Nodes       []NodeRecord `json:"nodes"`
	Edges       []EdgeRecord `json:"edges"`
	UserProfile string       `json:"user_profile"`
	UserImage   string       `json:"user_image"`
	Stats       Stats        `json:"stats"`
}

// NewDocument converts a build result and profile into a document
func NewDocument(result *linkgraph.Result, profile domain.UserProfile) *Document {
	doc := &Document{
		Username:    profile.Username,
		Isolate:     result.Isolate,
		Nodes:       make([]NodeRecord, 0, len(result.Articles)+len(result.Domains)),
		Edges:       make([]EdgeRecord, 0, len(result.Edges)),
		UserProfile: profile.ProfileText,
		UserImage:   profile.AvatarURL,
		Stats: Stats{
			Articles:   len(result.Articles),
			Domains:    len(result.Domains),
			Edges:      len(result.Edges),
			Dropped:    make(map[string]int, len(result.Dropped)),
			Collisions: len(result.Collisions),
		},
	}

	for reason, n := range result.Dropped {
		doc.Stats.Dropped[string(reason)] = n
	}
	for _, a := range result.Articles {
		doc.Nodes = append(doc.Nodes, articleRecord(a))
	}
	for _, d := range result.Domains {
		doc.Nodes = append(doc.Nodes, domainRecord(d))
	}
	for _, e := range result.Edges {
		doc.Edges = append(doc.Edges, edgeRecord(e))
	}

	return doc
}

func articleRecord(a *domain.ArticleNode) NodeRecord {
	return NodeRecord{
		ID:          a.ID,
		Kind:        string(a.Kind()),
		Shape:       ArticleShape,
		Color:       ArticleColor,
		Label:       truncateRunes(a.Title, ArticleLabelRunes),
		MainTitle:   a.Title,
		Size:        a.Size(),
		URL:         a.URL,
		Domain:      a.URL,
		Description: a.Subtitle,
		URLs:        []string{},
		Main:        1,
		Counter:     1,
		Font:        &Font{Color: ArticleFontColor, Size: ArticleFontSize},
	}
}

func domainRecord(d *domain.DomainNode) NodeRecord {
	urls := append([]string{}, d.URLs...)
	return NodeRecord{
		ID:          d.ID,
		Kind:        string(d.Kind()),
		Shape:       DomainShape,
		Label:       d.Label(),
		Size:        d.Size,
		URL:         d.Domain,
		Domain:      d.Domain,
		Description: d.Description,
		URLs:        urls,
		Main:        0,
		Counter:     d.Counter,
	}
}

func edgeRecord(e domain.Edge) EdgeRecord {
	color := EdgeColor{Color: UnknownEdgeColor, Highlight: UnknownEdgeHighlight}
	if e.Color == domain.EdgeKnown {
		color = EdgeColor{Color: KnownEdgeColor, Highlight: KnownEdgeHighlight}
	}
	return EdgeRecord{
		From:       e.From,
		To:         e.To,
		ColorClass: string(e.Color),
		Color:      color,
		Font:       Font{Color: EdgeFontColor, Size: EdgeFontSize},
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// FileName is the output file name for a user's graph: dots in the username become
// underscores and the suffix is "i" for isolate mode, "m" otherwise
func FileName(username string, isolate bool) string {
	mode := "m"
	if isolate {
		mode = "i"
	}
	return strings.ReplaceAll(username, ".", "_") + "_" + mode + ".html"
}
