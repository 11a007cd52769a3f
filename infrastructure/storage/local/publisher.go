// ABOUTME: Local filesystem publisher for rendered graph pages
// ABOUTME: Writes documents under an output directory and returns their file paths

package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	coreerrors "kgraph-api/core/errors"
)

// Publisher writes documents into a directory
type Publisher struct {
	dir string
}

// NewPublisher creates the output directory if needed
func NewPublisher(dir string) (*Publisher, error) {
	if dir == "" {
		return nil, &coreerrors.ValidationError{Field: "output_dir", Message: "output directory cannot be empty"}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Publisher{dir: dir}, nil
}

// Dir returns the output directory
func (p *Publisher) Dir() string {
	return p.dir
}

// Publish writes body to <dir>/<name>, replacing any previous file atomically
func (p *Publisher) Publish(ctx context.Context, name string, contentType string, body io.Reader) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(p.dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	target := filepath.Join(p.dir, name)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	return target, nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return &coreerrors.ValidationError{Field: "name", Message: fmt.Sprintf("invalid file name %q", name)}
	}
	return nil
}
