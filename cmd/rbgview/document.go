package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/recera/rbgview/cmd/rbgview/internal/config"
	"github.com/recera/rbgview/pkg/debug"
	"github.com/recera/rbgview/pkg/rbg"
)

// ErrMissingSelection is returned when no file was named and the working
// directory does not hold exactly one .rbg file
var ErrMissingSelection = errors.New("no .rbg file selected")

// missingSelectionMessage is what the user sees for ErrMissingSelection
const missingSelectionMessage = "No .rbg file selected"

// invalidFormatMessage is what the user sees for a file that is not JSON
const invalidFormatMessage = "Invalid RBG file format. The file must be a valid JSON."

// Extension of RBG files
const Extension = ".rbg"

// loadError wraps a failed document load with the message shown to users
type loadError struct {
	path string
	err  error
}

func (e *loadError) Error() string {
	if errors.Is(e.err, rbg.ErrInvalidFormat) {
		return invalidFormatMessage
	}
	return e.err.Error()
}

func (e *loadError) Unwrap() error { return e.err }

// resolveFile picks the document to open: the argument if given, otherwise
// the only .rbg file in dir.
func resolveFile(args []string, dir string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return filepath.Abs(args[0])
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", dir, err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: no %s file in %s", ErrMissingSelection, Extension, dir)
	case 1:
		return filepath.Abs(matches[0])
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = filepath.Base(m)
	}
	return "", fmt.Errorf("%w: pick one of %s", ErrMissingSelection, strings.Join(names, ", "))
}

// userMessage returns the text shown for err, using the fixed wording for
// the errors users are expected to hit
func userMessage(err error) string {
	if errors.Is(err, ErrMissingSelection) {
		return missingSelectionMessage + strings.TrimPrefix(err.Error(), ErrMissingSelection.Error())
	}
	return err.Error()
}

// loadDocument parses the file at path
func loadDocument(path string) (*rbg.Document, error) {
	doc, err := rbg.Load(path)
	if err != nil {
		debug.Logf("load %s: %v", path, err)
		return nil, &loadError{path: path, err: err}
	}
	return doc, nil
}

// loadConfig loads the config file, falling back to defaults on error
func loadConfig(flags *globalFlags) *config.Config {
	cfg, path, err := config.Load(".", flags.configPath)
	if err != nil {
		log.Printf("⚠️  Failed to load config: %v (using defaults)\n", err)
		return config.DefaultConfig()
	}
	if path != "" {
		debug.Logf("using config %s", path)
	}
	return cfg
}

// openDocument resolves and loads the document named by args
func openDocument(args []string) (string, *rbg.Document, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}
	path, err := resolveFile(args, wd)
	if err != nil {
		return "", nil, err
	}
	doc, err := loadDocument(path)
	if err != nil {
		return path, nil, err
	}
	return path, doc, nil
}
