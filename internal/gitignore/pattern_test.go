package gitignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/grrep/internal/errors"
)

func TestCompile_SkipsBlanksAndComments(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "empty line", line: ""},
		{name: "whitespace only", line: "   \t"},
		{name: "comment", line: "# build artifacts"},
		{name: "indented comment", line: "  # indented"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.line)
			require.NoError(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestCompile_Flags(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		negated  bool
		anchored bool
		dirOnly  bool
		segments int
	}{
		{name: "plain name", line: "foo.txt", segments: 1},
		{name: "negation", line: "!keep.log", negated: true, segments: 1},
		{name: "anchored", line: "/root.txt", anchored: true, segments: 1},
		{name: "directory only", line: "build/", dirOnly: true, segments: 1},
		{name: "anchored dir", line: "/build/", anchored: true, dirOnly: true, segments: 1},
		{name: "negated anchored", line: "!/keep", negated: true, anchored: true, segments: 1},
		{name: "multi segment", line: "doc/frotz", segments: 2},
		{name: "double star prefix", line: "**/foo", segments: 2},
		{name: "double star suffix", line: "foo/**", segments: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.line)
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.Equal(t, tt.negated, p.Negated)
			assert.Equal(t, tt.anchored, p.Anchored)
			assert.Equal(t, tt.dirOnly, p.DirOnly)
			assert.Len(t, p.segments, tt.segments)
		})
	}
}

func TestCompile_Escapes(t *testing.T) {
	t.Run("escaped hash is literal", func(t *testing.T) {
		p, err := Compile(`\#important`)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.False(t, p.Negated)
		assert.True(t, p.Match([]string{"#important"}))
		assert.False(t, p.Match([]string{"important"}))
	})

	t.Run("escaped bang is literal", func(t *testing.T) {
		p, err := Compile(`\!bang`)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.False(t, p.Negated)
		assert.True(t, p.Match([]string{"!bang"}))
	})

	t.Run("trailing whitespace trimmed", func(t *testing.T) {
		p, err := Compile("foo.txt   ")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.True(t, p.Match([]string{"foo.txt"}))
		assert.False(t, p.Match([]string{"foo.txt "}))
	})

	t.Run("escaped trailing space preserved", func(t *testing.T) {
		p, err := Compile(`foo\ `)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.True(t, p.Match([]string{"foo "}))
		assert.False(t, p.Match([]string{"foo"}))
	})
}

func TestCompile_MalformedPatterns(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "unterminated class", line: "foo[bar"},
		{name: "unterminated negated class", line: "foo[!bar"},
		{name: "bare slash", line: "/"},
		{name: "bare negation", line: "!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.line)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodePatternSyntax))
		})
	}
}

func TestCompileAll_SkipsBadLinesKeepsRest(t *testing.T) {
	content := []byte("*.log\nfoo[bar\n!keep.log\n# comment\n\nbuild/\n")

	patterns, warnings := CompileAll(content)

	require.Len(t, patterns, 3)
	assert.Equal(t, "*.log", patterns[0].Raw)
	assert.True(t, patterns[1].Negated)
	assert.True(t, patterns[2].DirOnly)

	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Line)
	assert.Equal(t, "foo[bar", warnings[0].Pattern)
}

func TestCompileAll_HandlesCRLF(t *testing.T) {
	patterns, warnings := CompileAll([]byte("*.log\r\nbuild/\r\n"))
	require.Empty(t, warnings)
	require.Len(t, patterns, 2)
	assert.True(t, patterns[0].Match([]string{"a.log"}))
	assert.True(t, patterns[1].DirOnly)
}
