package config

import (
	"path/filepath"
	"runtime"
)

const (
	configFileName      = "config.yml"
	datasetDirName      = "datasets"
	trainedModelDirName = "trained_models"
)

// packageRoot is the model package shipped alongside this module, resolved from
// the location this file was compiled from.
var packageRoot = func() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "model"
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "model")
}()

// Paths anchors the configuration file and the collaborator directories on a package root.
type Paths struct {
	Root string
}

// DefaultRoot returns the installation root of the model package.
func DefaultRoot() string {
	return filepath.Clean(packageRoot)
}

// DefaultPaths returns Paths anchored on DefaultRoot.
func DefaultPaths() Paths {
	return NewPaths(DefaultRoot())
}

// NewPaths returns Paths anchored on root. An empty root falls back to DefaultRoot.
func NewPaths(root string) Paths {
	if root == "" {
		root = DefaultRoot()
	}
	return Paths{Root: filepath.Clean(root)}
}

// ConfigFile is <root>/config.yml.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.Root, configFileName)
}

// DatasetDir is <root>/datasets. It is neither created nor checked here.
func (p Paths) DatasetDir() string {
	return filepath.Join(p.Root, datasetDirName)
}

// TrainedModelDir is <root>/trained_models. It is neither created nor checked here.
func (p Paths) TrainedModelDir() string {
	return filepath.Join(p.Root, trainedModelDirName)
}
