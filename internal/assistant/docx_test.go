package assistant

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocxText(t *testing.T) {
	doc := buildDocx(t, `
<w:p><w:r><w:t>Patient:</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve">A. Kumar</w:t></w:r></w:p>
<w:p><w:r><w:t></w:t></w:r></w:p>
<w:p><w:r><w:t>Hb </w:t></w:r><w:r><w:t>13.2 g/dL</w:t></w:r></w:p>`)

	got, err := extractDocxText(doc)
	require.NoError(t, err)
	assert.Equal(t, "Patient:\tA. Kumar\nHb 13.2 g/dL", got)
}

func TestExtractDocxText_IgnoresForeignNamespaces(t *testing.T) {
	doc := buildDocx(t, `<w:p><w:r><w:t>Visible</w:t></w:r></w:p>`+
		`<x:p xmlns:x="urn:other"><x:t>hidden</x:t></x:p>`)

	got, err := extractDocxText(doc)
	require.NoError(t, err)
	assert.Equal(t, "Visible", got)
}

func TestExtractDocxText_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = extractDocxText(buf.Bytes())
	assert.ErrorIs(t, err, errNoDocumentPart)
}

func TestExtractDocxText_NotZip(t *testing.T) {
	_, err := extractDocxText([]byte("plain text"))
	assert.Error(t, err)
}

func TestExtractDocxText_SkipsTextBoxes(t *testing.T) {
	doc := buildDocx(t, `<w:p><w:r><w:t xml:space="preserve">Outer start </w:t></w:r>`+
		`<w:r><w:pict><w:txbxContent><w:p><w:r><w:t>Box</w:t></w:r></w:p></w:txbxContent></w:pict></w:r>`+
		`<w:r><w:t>outer end</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Next</w:t></w:r></w:p>`)

	got, err := extractDocxText(doc)
	require.NoError(t, err)
	assert.Equal(t, "Outer start outer end\nNext", got)
}

func TestExtractDocxText_SkipsAlternateContent(t *testing.T) {
	doc := buildDocx(t, `<w:p xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">`+
		`<w:r><w:t xml:space="preserve">Before </w:t></w:r>`+
		`<w:r><mc:AlternateContent><mc:Choice Requires="wps"><w:drawing><w:txbxContent><w:p><w:r><w:t>Shape</w:t></w:r></w:p></w:txbxContent></w:drawing></mc:Choice>`+
		`<mc:Fallback><w:pict><w:txbxContent><w:p><w:r><w:t>Shape</w:t></w:r></w:p></w:txbxContent></w:pict></mc:Fallback></mc:AlternateContent></w:r>`+
		`<w:r><w:t>after</w:t></w:r></w:p>`)

	got, err := extractDocxText(doc)
	require.NoError(t, err)
	assert.Equal(t, "Before after", got)
}
