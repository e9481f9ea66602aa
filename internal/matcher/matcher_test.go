package matcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/grrep/internal/errors"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestSearchFile_FindsMatchingLines(t *testing.T) {
	path := writeFile(t, []byte("lorem ipsum\ndolor sit amet\nquick brown fox\n"))

	matches, err := SearchFile(path, "dolor", Options{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Line)
	assert.Equal(t, "dolor sit amet", matches[0].Text)
}

func TestSearchFile_LinesAreOneIndexed(t *testing.T) {
	path := writeFile(t, []byte("hello world\n"))

	matches, err := SearchFile(path, "hello", Options{})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Line)
}

func TestSearchFile_OneMatchPerLine(t *testing.T) {
	path := writeFile(t, []byte("foo foo foo\nbar\nfoo\n"))

	matches, err := SearchFile(path, "foo", Options{})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, []Match{
		{Line: 1, Text: "foo foo foo"},
		{Line: 3, Text: "foo"},
	}, matches)
}

func TestSearchFile_NoMatches(t *testing.T) {
	path := writeFile(t, []byte("nothing here\n"))

	matches, err := SearchFile(path, "absent", Options{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchFile_IgnoreCase(t *testing.T) {
	path := writeFile(t, []byte("Hello World\nHELLO AGAIN\ngoodbye\n"))

	t.Run("case sensitive by default", func(t *testing.T) {
		matches, err := SearchFile(path, "hello", Options{})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("ignore case matches both", func(t *testing.T) {
		matches, err := SearchFile(path, "hello", Options{IgnoreCase: true})
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})
}

func TestSearchFile_BinaryFileIsReadError(t *testing.T) {
	path := writeFile(t, []byte("text\x00with nul bytes"))

	matches, err := SearchFile(path, "text", Options{})
	assert.Nil(t, matches)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFileRead))
	assert.Contains(t, err.Error(), "binary file")
}

func TestSearchFile_InvalidUTF8IsReadError(t *testing.T) {
	path := writeFile(t, []byte{0xff, 0xfe, 'a', 'b', 0xff, 0x01})

	_, err := SearchFile(path, "ab", Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFileRead))
}

func TestSearchFile_MissingFileIsReadError(t *testing.T) {
	_, err := SearchFile(filepath.Join(t.TempDir(), "gone.txt"), "x", Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFileRead))
}

func TestSearchFile_EmptyFile(t *testing.T) {
	path := writeFile(t, nil)

	matches, err := SearchFile(path, "x", Options{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchFile_MultiByteRuneAtProbeBoundary(t *testing.T) {
	// A valid UTF-8 file whose 1024-byte probe cuts a rune in half must
	// not be classified as binary.
	var b strings.Builder
	for b.Len() < probeSize-1 {
		b.WriteString("x")
	}
	b.WriteString("é") // two bytes; straddles the probe boundary
	b.WriteString(" needle\n")
	path := writeFile(t, []byte(b.String()))

	matches, err := SearchFile(path, "needle", Options{})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name   string
		sample []byte
		want   bool
	}{
		{name: "empty", sample: nil, want: false},
		{name: "ascii", sample: []byte("plain text"), want: false},
		{name: "utf8", sample: []byte("héllo wörld"), want: false},
		{name: "nul byte", sample: []byte{'a', 0, 'b'}, want: true},
		{name: "invalid utf8", sample: []byte{0xff, 0xfe, 0xfd, 0xfc, 0xfb}, want: true},
		{name: "truncated trailing rune", sample: append([]byte("ok"), 0xc3), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBinary(tt.sample))
		})
	}
}
