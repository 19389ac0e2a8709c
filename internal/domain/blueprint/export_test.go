package blueprint

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatJSON},
		{input: "JSON", want: FormatJSON},
		{input: "jsonc", want: FormatJSONC},
		{input: "yml", want: FormatYAML},
		{input: " yaml ", want: FormatYAML},
		{input: "toml", want: FormatTOML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportJSON(t *testing.T) {
	out, err := Export(Document(`{"b":1,"a":[true]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    true\n  ]\n}\n", string(out))
}

func TestExportYAMLKeepsKeyOrder(t *testing.T) {
	out, err := Export(Document(`{"zeta":1,"alpha":{"name":"belt"}}`), FormatYAML)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "zeta: 1")
	assert.Contains(t, text, "name: belt")
	assert.Less(t, strings.Index(text, "zeta"), strings.Index(text, "alpha"))
}

func TestExportTOML(t *testing.T) {
	out, err := Export(Document(`{"name":"belt","count":3,"ratio":0.5,"tags":["a","b"]}`), FormatTOML)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "name = 'belt'")
	assert.Contains(t, text, "count = 3")
	assert.Contains(t, text, "ratio = 0.5")
}

func TestExportTOMLRejectsUnrepresentable(t *testing.T) {
	_, err := Export(Document(`[1,2]`), FormatTOML)
	assert.Error(t, err)

	_, err = Export(Document(`{"a":{"b":null}}`), FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.b")
}

func TestImport(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		want   string
	}{
		{name: "json", format: FormatJSON, input: "{ \"a\" : 1 }", want: `{"a":1}`},
		{name: "jsonc", format: FormatJSONC, input: "{\n  // belt\n  \"a\": [1, 2,],\n}", want: `{"a":[1,2]}`},
		{name: "yaml", format: FormatYAML, input: "z: 1\na:\n  - x\n", want: `{"z":1,"a":["x"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Import([]byte(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.String())
		})
	}

	_, err := Import([]byte("a = 1"), FormatTOML)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestImportThenEncode(t *testing.T) {
	doc, err := Import([]byte("name: belt\nentities: []\n"), FormatYAML)
	require.NoError(t, err)

	out, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, doc.String(), decoded.String())
}
