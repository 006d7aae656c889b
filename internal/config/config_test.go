package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/asmethod/internal/expand"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "as_method", cfg.Attribute)
	assert.Equal(t, expand.DefaultTypeParamPrefix, cfg.TypeParamPrefix)
	assert.Equal(t, 4, cfg.IndentWidth)
	assert.True(t, cfg.AllowLint)
	assert.Equal(t, []string{".rs"}, cfg.Extensions)
	assert.Empty(t, cfg.Source)
}

func TestParseYAML(t *testing.T) {
	cfg, err := Parse("asmethod.yaml", []byte("attribute: method\nindent_width: 2\nallow_lint: false\n"))
	require.NoError(t, err)

	assert.Equal(t, "method", cfg.Attribute)
	assert.Equal(t, 2, cfg.IndentWidth)
	assert.False(t, cfg.AllowLint)
	assert.Equal(t, expand.DefaultTypeParamPrefix, cfg.TypeParamPrefix, "omitted fields keep defaults")
	assert.Equal(t, []string{".rs"}, cfg.Extensions)
}

func TestParseCUE(t *testing.T) {
	src := `
type_param_prefix: "GEN_T"
extensions: [".rs", ".rsx"]
`
	cfg, err := Parse("asmethod.cue", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "GEN_T", cfg.TypeParamPrefix)
	assert.Equal(t, []string{".rs", ".rsx"}, cfg.Extensions)
	assert.Equal(t, "as_method", cfg.Attribute)
}

func TestParseEmptyYAML(t *testing.T) {
	cfg, err := Parse("asmethod.yml", nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Attribute, cfg.Attribute)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"unknown field", "asmethod.yaml", "colour: blue\n"},
		{"indent too wide", "asmethod.yaml", "indent_width: 12\n"},
		{"lowercase prefix", "asmethod.yaml", "type_param_prefix: gen\n"},
		{"bad attribute", "asmethod.cue", `attribute: "as-method"`},
		{"bad extension", "asmethod.yaml", "extensions: [rs]\n"},
		{"wrong type", "asmethod.yaml", "allow_lint: sometimes\n"},
		{"malformed yaml", "asmethod.yaml", "attribute: [\n"},
		{"malformed cue", "asmethod.cue", "attribute: {"},
		{"unknown format", "asmethod.toml", "attribute = 'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.file, []byte(tt.data))
			require.Error(t, err)

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.NotEmpty(t, cerr.Message)
		})
	}
}

func TestLoadSearchesDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asmethod.yml"), []byte("attribute: ext\n"), 0o644))

	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, "ext", cfg.Attribute)
	assert.Equal(t, filepath.Join(dir, "asmethod.yml"), cfg.Source)
}

func TestLoadPrefersCUE(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asmethod.yaml"), []byte("attribute: from_yaml\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "asmethod.cue"), []byte(`attribute: "from_cue"`), 0o644))

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "from_cue", cfg.Attribute)
}

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Error(), "nope.yaml")
}

func TestExpandOptions(t *testing.T) {
	cfg := &Config{TypeParamPrefix: "P", IndentWidth: 2, AllowLint: false}

	opts := cfg.ExpandOptions()
	assert.Equal(t, expand.Options{TypeParamPrefix: "P", OmitLintAllow: true, Indent: "  "}, opts)
}

func TestMatches(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Matches("src/lib.rs"))
	assert.False(t, cfg.Matches("README.md"))
	assert.False(t, cfg.Matches("Makefile"))
}
