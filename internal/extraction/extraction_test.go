package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bullet glyphs become spaces",
			input:    "Skills: • React ● Node.js ▪ Docker",
			expected: "Skills: React Node.js Docker",
		},
		{
			name:     "whitespace runs collapse",
			input:    "React\n\n\tNode.js   Docker",
			expected: "React Node.js Docker",
		},
		{
			name:     "already clean",
			input:    "React Node.js",
			expected: "React Node.js",
		},
		{
			name:     "only whitespace",
			input:    " \n\t ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestFromDocument_PlainText(t *testing.T) {
	text, err := FromDocument(MIMEText, []byte("  Senior React developer.\n• MERN stack  "))
	require.NoError(t, err)
	assert.Equal(t, "Senior React developer. MERN stack", text)
}

func TestFromDocument_UnsupportedType(t *testing.T) {
	_, err := FromDocument("image/png", []byte{0x89, 0x50})
	require.Error(t, err)

	var ee *ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Contains(t, ee.Error(), "unsupported document type")
}

func TestFromDocument_EmptyPlainText(t *testing.T) {
	_, err := FromDocument(MIMEText, []byte("   \n\t  "))
	require.Error(t, err)

	var ee *ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Contains(t, ee.Error(), "no extractable text")
}

func TestFromPDF_Malformed(t *testing.T) {
	_, err := FromPDF([]byte("not a pdf"))
	require.Error(t, err)

	var ee *ExtractionError
	require.ErrorAs(t, err, &ee)
}

func TestFromDOCX_Malformed(t *testing.T) {
	_, err := FromDOCX([]byte("not a docx"))
	require.Error(t, err)

	var ee *ExtractionError
	require.ErrorAs(t, err, &ee)
}
