package application

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eugenenazirov/mlops-model/internal/config"
)

const pipelineFileExt = ".pkl"

// App is the read-only application context shared by pipeline collaborators.
type App struct {
	cfg        config.Config
	paths      config.Paths
	configFile string
	logger     *zap.Logger
}

// Option configures New.
type Option func(*App)

// WithConfigFile loads the configuration from path instead of <root>/config.yml.
func WithConfigFile(path string) Option {
	return func(a *App) {
		a.configFile = path
	}
}

// New loads and validates the configuration eagerly. A returned error means the
// pipeline must not start.
func New(paths config.Paths, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{
		paths:  paths,
		logger: logger,
	}
	for _, opt := range opts {
		opt(app)
	}

	var (
		cfg config.Config
		err error
	)
	if app.configFile != "" {
		cfg, err = config.LoadFile(app.configFile)
	} else {
		app.configFile = paths.ConfigFile()
		cfg, err = config.Load(paths)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	app.cfg = cfg

	logger.Info("configuration loaded",
		zap.String("config_file", app.configFile),
		zap.String("package_name", cfg.App.PackageName),
		zap.String("target", cfg.Model.Target),
		zap.Int("features", len(cfg.Model.Features)),
		zap.Float64("test_size", cfg.Model.TestSize),
		zap.Int("random_state", cfg.Model.RandomState),
	)
	logger.Debug("feature order", zap.Strings("features", cfg.Model.Features))

	return app, nil
}

// Config returns a copy of the validated configuration.
func (a *App) Config() config.Config {
	return a.cfg.Clone()
}

// Paths returns the package root layout.
func (a *App) Paths() config.Paths {
	return a.paths
}

// ConfigFile returns the file the configuration was loaded from.
func (a *App) ConfigFile() string {
	return a.configFile
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// ClientDataPath is the client data file inside the dataset directory.
func (a *App) ClientDataPath() string {
	return filepath.Join(a.paths.DatasetDir(), a.cfg.App.ClientDataFile)
}

// PriceDataPath is the price data file inside the dataset directory.
func (a *App) PriceDataPath() string {
	return filepath.Join(a.paths.DatasetDir(), a.cfg.App.PriceDataFile)
}

// PipelinePath is the trained pipeline artifact for version, named
// <pipeline_save_file><version>.pkl inside the trained model directory.
func (a *App) PipelinePath(version string) string {
	return filepath.Join(a.paths.TrainedModelDir(), a.cfg.App.PipelineSaveFile+version+pipelineFileExt)
}
