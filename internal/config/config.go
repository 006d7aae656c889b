// Package config loads the optional project configuration file.
//
// A configuration is either YAML (asmethod.yaml, asmethod.yml) or CUE
// (asmethod.cue). Both are checked against the embedded #Config schema,
// which also supplies defaults for omitted fields.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/asmethod/internal/expand"
)

//go:embed schema.cue
var schemaSource string

// FileNames are searched in order when no path is given.
var FileNames = []string{"asmethod.cue", "asmethod.yaml", "asmethod.yml"}

// Config is the decoded project configuration.
type Config struct {
	Attribute       string   `json:"attribute" yaml:"attribute"`
	TypeParamPrefix string   `json:"type_param_prefix" yaml:"type_param_prefix"`
	IndentWidth     int      `json:"indent_width" yaml:"indent_width"`
	AllowLint       bool     `json:"allow_lint" yaml:"allow_lint"`
	Extensions      []string `json:"extensions" yaml:"extensions"`

	// Source is the file the configuration was read from, or "" for defaults.
	Source string `json:"-" yaml:"-"`
}

// Error is a configuration file that could not be read or does not
// satisfy the schema.
type Error struct {
	Path    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Message)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	ctx := cuecontext.New()
	empty := ctx.CompileString("{}")
	cfg, err := decode(ctx, empty, "")
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return cfg
}

// Load reads the configuration at path. An empty path searches dir for one
// of FileNames and falls back to Default when none exists.
func Load(path, dir string) (*Config, error) {
	if path == "" {
		found, err := find(dir)
		if err != nil {
			return nil, err
		}
		if found == "" {
			return Default(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Message: err.Error()}
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

// Parse decodes configuration bytes. The format is chosen by the file
// extension of name.
func Parse(name string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	var value cue.Value
	switch strings.ToLower(filepath.Ext(name)) {
	case ".cue":
		value = ctx.CompileBytes(data, cue.Filename(name))
	case ".yaml", ".yml":
		fields := map[string]any{}
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return nil, &Error{Path: name, Message: err.Error()}
		}
		if fields == nil {
			fields = map[string]any{}
		}
		value = ctx.Encode(fields)
	default:
		return nil, &Error{Path: name, Message: "unsupported config format (want .cue, .yaml or .yml)"}
	}
	if err := value.Err(); err != nil {
		return nil, &Error{Path: name, Message: details(err)}
	}

	return decode(ctx, value, name)
}

// decode unifies value with #Config and decodes the result.
func decode(ctx *cue.Context, value cue.Value, name string) (*Config, error) {
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &Error{Path: "schema.cue", Message: details(err)}
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &Error{Path: name, Message: details(err)}
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, &Error{Path: name, Message: details(err)}
	}
	return &cfg, nil
}

func find(dir string) (string, error) {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", &Error{Path: candidate, Message: err.Error()}
		}
	}
	return "", nil
}

func details(err error) string {
	return strings.TrimSpace(cueerrors.Details(err, nil))
}

// ExpandOptions converts the configuration into pipeline options.
func (c *Config) ExpandOptions() expand.Options {
	return expand.Options{
		TypeParamPrefix: c.TypeParamPrefix,
		OmitLintAllow:   !c.AllowLint,
		Indent:          strings.Repeat(" ", c.IndentWidth),
	}
}

// Matches reports whether path has one of the configured extensions.
func (c *Config) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
