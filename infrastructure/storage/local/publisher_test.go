package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	coreerrors "kgraph-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	p, err := NewPublisher(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, p.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = NewPublisher("")
	assert.True(t, coreerrors.IsValidation(err))
}

func TestPublisher_Publish(t *testing.T) {
	p, err := NewPublisher(t.TempDir())
	require.NoError(t, err)

	location, err := p.Publish(context.Background(), "alice_m.html", "text/html", strings.NewReader("<html>one</html>"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.Dir(), "alice_m.html"), location)

	location, err = p.Publish(context.Background(), "alice_m.html", "text/html", strings.NewReader("<html>two</html>"))
	require.NoError(t, err)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "<html>two</html>", string(data))

	entries, err := os.ReadDir(p.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestPublisher_Publish_RejectsBadNames(t *testing.T) {
	p, err := NewPublisher(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../escape.html", `dir\file.html`} {
		_, err := p.Publish(context.Background(), name, "text/html", strings.NewReader("x"))
		assert.True(t, coreerrors.IsValidation(err), name)
	}
}

func TestPublisher_Publish_CancelledContext(t *testing.T) {
	p, err := NewPublisher(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Publish(ctx, "alice_m.html", "text/html", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
