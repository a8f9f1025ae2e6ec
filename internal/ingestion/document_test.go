package ingestion

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>EXPERIENCE</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Product Manager &amp; Analyst</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func buildDocx(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractResumeText_Docx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	require.NoError(t, os.WriteFile(path, buildDocx(t), 0644))

	text, err := ExtractResumeText(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEXPERIENCE\nProduct Manager & Analyst", text)
}

func TestExtractResumeText_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.md")
	require.NoError(t, os.WriteFile(path, []byte("Jane   Doe\r\nSKILLS"), 0644))

	text, err := ExtractResumeText(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSKILLS", text)
}

func TestExtractResumeText_Errors(t *testing.T) {
	dir := t.TempDir()
	badPDF := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(badPDF, []byte("not a pdf"), 0644))
	odt := filepath.Join(dir, "resume.odt")
	require.NoError(t, os.WriteFile(odt, []byte("x"), 0644))

	tests := []struct {
		name    string
		path    string
		message string
	}{
		{"missing", filepath.Join(dir, "missing.pdf"), "failed to read document"},
		{"corrupt pdf", badPDF, "failed to read pdf"},
		{"unsupported", odt, "unsupported file type: .odt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractResumeText(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestWordXMLToText(t *testing.T) {
	xml := `<w:p><w:r><w:t>A</w:t><w:tab/><w:t>B</w:t><w:br/><w:t>C &lt;D&gt;</w:t></w:r></w:p>`
	assert.Equal(t, "A\tB\nC <D>\n", wordXMLToText(xml))
}
