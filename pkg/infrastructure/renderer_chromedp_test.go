package infrastructure

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chromePath(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("no Chrome binary on PATH")
	return ""
}

func TestChromedpRendererPrintsPDF(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a browser")
	}
	r := NewChromedpRenderer(chromePath(t))

	out, err := r.RenderHTMLToPDF(context.Background(), `<!doctype html><html><body><main id="resume"><h1>Jane Roe</h1></main></body></html>`)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestChromedpRendererCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewChromedpRenderer("/nonexistent/chrome").RenderHTMLToPDF(ctx, "<html></html>")
	assert.Error(t, err)
}
