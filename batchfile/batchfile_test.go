package batchfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/translit"
)

func writeBatch(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    []any
	}{
		{"text lines", "in.txt", "hello\n\negypt\r\n  \nnile\n", []any{"hello", "egypt", "nile"}},
		{"json", "in.json", `["hello", "egypt"]`, []any{"hello", "egypt"}},
		{"json mixed", "in.json", `["hello", 42, null]`, []any{"hello", float64(42), nil}},
		{"yaml", "in.yaml", "- hello\n- egypt\n", []any{"hello", "egypt"}},
		{"yml mixed", "in.yml", "- hello\n- 7\n", []any{"hello", 7}},
		{"toml", "in.toml", "texts = [\"hello\", \"egypt\"]\n", []any{"hello", "egypt"}},
		{"upper case extension", "IN.JSON", `["a"]`, []any{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeBatch(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := Load(writeBatch(t, "in.csv", "a,b"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
		assert.Contains(t, errors.GetAllHints(err), "use .txt, .json, .yaml, .yml or .toml")
	})

	t.Run("json object", func(t *testing.T) {
		_, err := Load(writeBatch(t, "in.json", `{"texts": ["a"]}`))
		assert.Error(t, err)
	})

	t.Run("toml without texts", func(t *testing.T) {
		_, err := Load(writeBatch(t, "in.toml", "title = \"x\"\n"))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidRequestError(err))
	})
}

func TestLoadedValuesFeedBatchConvert(t *testing.T) {
	values, err := Load(writeBatch(t, "in.json", `["ab", 3]`))
	require.NoError(t, err)

	_, err = translit.BatchConvert(values)
	require.Error(t, err)
	assert.True(t, errors.Is(err, translit.ErrInvalidInputKind))
	assert.Contains(t, err.Error(), "batch item 1")
}
