package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/multierr"
)

// FindConfigFile returns the config file path under paths if a regular file exists there.
func FindConfigFile(paths Paths) (string, error) {
	path := paths.ConfigFile()
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		// Any other stat failure (e.g. a path component that is a file) still means no config file there.
		return "", fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w at %s: not a regular file", ErrNotFound, path)
	}
	return path, nil
}

// FetchConfigFromYAML reads and parses the config file at path. An empty path
// resolves the default location through FindConfigFile.
func FetchConfigFromYAML(paths Paths, path string) (*Document, error) {
	if path == "" {
		found, err := FindConfigFile(paths)
		if err != nil {
			return nil, err
		}
		path = found
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// CreateAndValidateConfig validates doc against both schemas and assembles a Config.
// A nil doc is fetched from the default location. Every field violation is reported.
func CreateAndValidateConfig(paths Paths, doc *Document) (Config, error) {
	if doc == nil {
		fetched, err := FetchConfigFromYAML(paths, "")
		if err != nil {
			return Config{}, err
		}
		doc = fetched
	}

	app, appErr := ValidateAppConfig(doc)
	model, modelErr := ValidateModelConfig(doc)
	if err := multierr.Combine(appErr, modelErr); err != nil {
		return Config{}, newValidationError(err)
	}

	return Config{App: app, Model: model}, nil
}

// Load fetches and validates the config file at the default location under paths.
func Load(paths Paths) (Config, error) {
	return CreateAndValidateConfig(paths, nil)
}

// LoadFile fetches and validates the config file at an explicit path.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("%w: empty path", ErrIO)
	}
	doc, err := FetchConfigFromYAML(Paths{}, path)
	if err != nil {
		return Config{}, err
	}
	return CreateAndValidateConfig(Paths{}, doc)
}

// readFile reads the whole file and releases the handle before parsing starts.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return data, nil
}
