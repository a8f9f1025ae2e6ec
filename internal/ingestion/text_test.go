package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \n  \n  ", ""},
		{"headings kept", "# Title\n## Subtitle\nContent here", "# Title\n## Subtitle\nContent here"},
		{"bullets kept", "- Item 1\n- Item 2\n* Item 3", "- Item 1\n- Item 2\n* Item 3"},
		{"inner spaces collapsed", "Line    with    multiple    spaces", "Line with multiple spaces"},
		{"blank lines capped", "Line 1\n\n\n\n\nLine 2", "Line 1\n\nLine 2"},
		{"line endings", "Line 1\r\nLine 2\rLine 3\nLine 4", "Line 1\nLine 2\nLine 3\nLine 4"},
		{"indent kept", "Requirements:\n    - SQL\n\t- Agile", "Requirements:\n    - SQL\n    - Agile"},
		{"unicode bullets", "• Own the roadmap\n·  Partner with design", "- Own the roadmap\n- Partner with design"},
		{"unicode text", "Test with émojis 🚀 and spéciàl chàracters", "Test with émojis 🚀 and spéciàl chàracters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

func TestFromFile(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Senior PM\n\n\n\nRequirements:  SQL"), 0644))

	text, meta, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Senior PM\n\nRequirements: SQL", text)
	assert.Equal(t, path, meta.Source)
	assert.Equal(t, Hash(text), meta.Hash)
	assert.Len(t, meta.Hash, 64)
	assert.Equal(t, fixed, meta.FetchedAt)
}

func TestFromFile_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.html")
	html := `<html><body><nav>Careers</nav><main><h2>Requirements</h2><ul><li>SQL</li></ul></main></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))

	text, _, err := FromFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "## Requirements")
	assert.Contains(t, text, "- SQL")
	assert.NotContains(t, text, "Careers")
}

func TestFromFile_NotFound(t *testing.T) {
	_, _, err := FromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var ingestErr *Error
	require.True(t, errors.As(err, &ingestErr))
	assert.Contains(t, err.Error(), "file not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromFile_HashDiffersByContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("Product Manager"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("Product Owner"), 0644))

	_, metaA, err := FromFile(a)
	require.NoError(t, err)
	_, metaB, err := FromFile(b)
	require.NoError(t, err)
	assert.NotEqual(t, metaA.Hash, metaB.Hash)
}

func TestFromText(t *testing.T) {
	text, meta := FromText("  Lead   discovery  ", "request")
	assert.Equal(t, "Lead discovery", text)
	assert.Equal(t, "request", meta.Source)
}
