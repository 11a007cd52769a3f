// ABOUTME: Corpus file loader for JSON and YAML article dumps
// ABOUTME: Validates entries and fills missing link lists from embedded markdown

package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	coreerrors "kgraph-api/core/errors"
	"kgraph-api/core/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// LoadFile reads a corpus from path; the format follows the extension (.yaml/.yml or JSON)
func LoadFile(path string) (*domain.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}

	return Decode(data, format, path)
}

// Decode parses corpus data in the given format ("json" or "yaml"). source names the
// data in errors.
func Decode(data []byte, format string, source string) (*domain.Corpus, error) {
	var c domain.Corpus

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, &coreerrors.ParseError{Source: source, Format: "yaml corpus", Err: err}
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&c); err != nil {
			return nil, &coreerrors.ParseError{Source: source, Format: "json corpus", Err: err}
		}
	default:
		return nil, &coreerrors.ValidationError{Field: "format", Message: fmt.Sprintf("unsupported corpus format %q", format)}
	}

	if err := Normalize(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Normalize validates a corpus and extracts links from markdown for articles that carry
// no explicit links
func Normalize(c *domain.Corpus) error {
	if err := validate.Struct(c); err != nil {
		return &coreerrors.ValidationError{Field: "articles", Message: err.Error()}
	}

	for i := range c.Articles {
		a := &c.Articles[i]
		if len(a.Links) == 0 && a.Markdown != "" {
			a.Links = ExtractMarkdownLinks([]byte(a.Markdown))
		}
	}
	return nil
}
