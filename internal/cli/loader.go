package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/asmethod/internal/config"
	"github.com/roach88/asmethod/internal/syntax"
)

// Error code constants - unified across all CLI commands. Expansion errors
// use the E2xx codes from the expand package.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No source files found
	ErrCodeReadFailed  = "E004" // Source file could not be read
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeParseFailed = "E006" // Source file has a syntax error outside annotated items
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeConfig      = "E008" // Config file invalid
)

// LoadError represents an error that occurred while finding or reading
// source files.
type LoadError struct {
	Code    string
	Message string
	Pos     syntax.Pos // source position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// SourceFile is one input file.
type SourceFile struct {
	Path string // path as given or found
	Rel  string // path relative to the argument it was found under
	Src  []byte
}

// LoadSources resolves the path arguments into source files. Directories
// are walked for files with one of the configured extensions; files named
// directly are always taken.
func LoadSources(paths []string, cfg *config.Config) ([]SourceFile, error) {
	var files []SourceFile
	for _, arg := range paths {
		info, err := os.Stat(arg)
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", arg)}
		}
		if err != nil {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing %s: %v", arg, err)}
		}

		if !info.IsDir() {
			src, err := os.ReadFile(arg)
			if err != nil {
				return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading %s: %v", arg, err)}
			}
			files = append(files, SourceFile{Path: arg, Rel: filepath.Base(arg), Src: src})
			continue
		}

		found, err := FindSourceFiles(arg, cfg)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		for _, path := range found {
			src, err := os.ReadFile(path)
			if err != nil {
				return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading %s: %v", path, err)}
			}
			rel, err := filepath.Rel(arg, path)
			if err != nil {
				rel = filepath.Base(path)
			}
			files = append(files, SourceFile{Path: path, Rel: rel, Src: src})
		}
	}

	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no source files found in %s", strings.Join(paths, ", "))}
	}
	return files, nil
}

// FindSourceFiles walks dir and returns matching file paths in lexical
// order. Hidden directories and cargo's target directory are skipped.
func FindSourceFiles(dir string, cfg *config.Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "target") {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.Matches(path) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// loadConfig resolves the --config flag against the working directory.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	cfg, err := config.Load(opts.Config, wd)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeConfig, Message: err.Error()}
	}
	return cfg, nil
}
