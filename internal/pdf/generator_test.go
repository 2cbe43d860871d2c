package pdf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-jobscout/internal/models"
	"go-jobscout/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	g := NewGenerator()
	g.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	report := &pipeline.Report{
		Params:   pipeline.Params{JobTitle: "Go Developer", Location: "India", MinScore: 70},
		Skills:   []string{"Go", "Docker"},
		Analyzed: 4,
		Matches: []models.Match{{
			Title:     "Backend <Engineer>",
			Company:   "Acme",
			Location:  "Pune",
			Score:     91,
			Reason:    "Great fit",
			ApplyLink: "https://acme.com/careers/1",
		}},
	}

	html, err := g.RenderHTML(report)
	require.NoError(t, err)
	out := string(html)
	assert.Contains(t, out, "Generated: 2026-03-01 10:00:00")
	assert.Contains(t, out, "Skills: Go, Docker")
	assert.Contains(t, out, "1. Backend &lt;Engineer&gt;")
	assert.Contains(t, out, "91/100")
	assert.Contains(t, out, `href="https://acme.com/careers/1"`)

	html, err = g.RenderHTML(&pipeline.Report{Params: pipeline.Params{MinScore: 80}})
	require.NoError(t, err)
	assert.Contains(t, string(html), "No jobs matched the minimum score of 80.")
}

func TestGenerate(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a playwright browser")
	}
	if os.Getenv("PLAYWRIGHT_TESTS") == "" {
		t.Skip("set PLAYWRIGHT_TESTS=1 to render with chromium")
	}

	pdfBytes, err := NewGenerator().Generate(&pipeline.Report{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	path := filepath.Join(t.TempDir(), "out", "report.pdf")
	require.NoError(t, SaveToFile(pdfBytes, path))
	assert.FileExists(t, path)
}
