package formatter

import (
	"testing"

	"github.com/rverdelli/PlatformVA/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_Create(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		format        entity.ResultFormat
		wantExtension string
	}{
		{entity.FormatMarkdown, ".md"},
		{entity.FormatPDF, ".pdf"},
		{entity.FormatDOCX, ".docx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := factory.Create(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExtension, f.FileExtension())
			assert.NotEmpty(t, f.ContentType())
		})
	}
}

func TestFactory_CreateUnsupported(t *testing.T) {
	_, err := NewFactory().Create("rtf")
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

func TestMarkdownFormatter(t *testing.T) {
	data, err := NewMarkdownFormatter().Format("## Final interpreted requirement\n\nA CRM.")
	require.NoError(t, err)

	assert.Equal(t, "# Solution proposal\n\n## Final interpreted requirement\n\nA CRM.\n", string(data))
}

func TestPDFFormatter_ProducesDocument(t *testing.T) {
	data, err := NewPDFFormatter().Format("line one\nline two")
	require.NoError(t, err)

	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestDOCXFormatter_ProducesDocument(t *testing.T) {
	data, err := NewDOCXFormatter().Format("line one\nline two")
	require.NoError(t, err)

	require.NotEmpty(t, data)
	// DOCX is a zip container.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
