package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/mlops-model/internal/application"
	"github.com/eugenenazirov/mlops-model/internal/config"
	"github.com/eugenenazirov/mlops-model/internal/logging"
)

var newLogger = logging.New

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mlconfig: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	kingpinApp := kingpin.New("mlconfig", "Model pipeline configuration - validates and inspects config.yml")
	root := kingpinApp.Flag("root", "Package root holding config.yml, datasets/ and trained_models/").Default(config.DefaultRoot()).String()
	configFile := kingpinApp.Flag("config", "Path to a YAML configuration file (overrides <root>/config.yml)").String()
	logFormat := kingpinApp.Flag("log-format", "Log encoding").Default(logging.FormatJSON).Enum(logging.FormatJSON, logging.FormatConsole)
	debug := kingpinApp.Flag("debug", "Enable debug logging").Bool()

	validateCmd := kingpinApp.Command("validate", "Load and validate the configuration").Default()
	showCmd := kingpinApp.Command("show", "Print the validated configuration as YAML")
	pathsCmd := kingpinApp.Command("paths", "Print the configuration file and collaborator directories")

	kingpinApp.UsageWriter(stdout)
	terminated := false
	kingpinApp.Terminate(func(int) {
		terminated = true
	})

	command, err := kingpinApp.Parse(args)
	if terminated {
		return nil
	}
	if err != nil {
		return err
	}

	logger, err := newLogger(logging.Options{Format: *logFormat, Debug: *debug})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	paths := config.NewPaths(*root)
	if command == pathsCmd.FullCommand() {
		return printPaths(stdout, paths, *configFile)
	}

	var opts []application.Option
	if *configFile != "" {
		opts = append(opts, application.WithConfigFile(*configFile))
	}

	app, err := application.New(paths, logger, opts...)
	if err != nil {
		logger.Error("configuration rejected", zap.Error(err))
		return err
	}

	switch command {
	case showCmd.FullCommand():
		return printConfig(stdout, app.Config())
	case validateCmd.FullCommand():
		logger.Info("configuration valid", zap.String("config_file", app.ConfigFile()))
	}
	return nil
}

func printConfig(w io.Writer, cfg config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// printPaths reports the file that would be loaded; configFile overrides <root>/config.yml when set.
func printPaths(w io.Writer, paths config.Paths, configFile string) error {
	if configFile == "" {
		configFile = paths.ConfigFile()
	}
	_, err := fmt.Fprintf(w, "config_file: %s\ndataset_dir: %s\ntrained_model_dir: %s\n",
		configFile, paths.DatasetDir(), paths.TrainedModelDir())
	return err
}
