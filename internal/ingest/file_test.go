package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFileText_PlainText(t *testing.T) {
	text, err := ExtractFileText("resume.txt", []byte("Jane Doe\r\n\r\n\r\n\r\n- Built   things"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\n- Built   things", text)
}

func TestExtractFileText_MarkdownAndUnnamed(t *testing.T) {
	text, err := ExtractFileText("resume.md", []byte("# Jane Doe"))
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe", text)

	text, err = ExtractFileText("pasted", []byte("raw pasted resume"))
	require.NoError(t, err)
	assert.Equal(t, "raw pasted resume", text)
}

func TestExtractFileText_UnsupportedExtension(t *testing.T) {
	_, err := ExtractFileText("resume.exe", []byte("binary"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestExtractFileText_CorruptPDF(t *testing.T) {
	_, err := ExtractFileText("resume.pdf", []byte("not actually a pdf"))
	require.Error(t, err)
}

func TestExtractFileText_CorruptDocx(t *testing.T) {
	_, err := ExtractFileText("resume.docx", []byte("not actually a zip archive"))
	require.Error(t, err)
}

func TestReadResumeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\nEngineer"), 0644))

	text, err := ReadResumeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEngineer", text)
}

func TestReadResumeFile_Missing(t *testing.T) {
	_, err := ReadResumeFile("/nonexistent/resume.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
