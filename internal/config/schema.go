package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	appSchema   = "app_config"
	modelSchema = "model_config"
)

const (
	keyPackageName      = "package_name"
	keyPipelineSaveFile = "pipeline_save_file"
	keyClientDataFile   = "client_data_file"
	keyPriceDataFile    = "price_data_file"

	keyTarget          = "target"
	keyFeatures        = "features"
	keyRandomState     = "random_state"
	keyNumericalVars   = "numerical_vars"
	keyCategoricalVars = "categorical_vars"
	keyTestSize        = "test_size"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	PackageName      string `yaml:"package_name"`
	PipelineSaveFile string `yaml:"pipeline_save_file"`
	ClientDataFile   string `yaml:"client_data_file"`
	PriceDataFile    string `yaml:"price_data_file"`
}

// ModelConfig holds model training settings. Features is ordered; its order is the training feature order.
type ModelConfig struct {
	Target          string   `yaml:"target"`
	Features        []string `yaml:"features"`
	RandomState     int      `yaml:"random_state"`
	NumericalVars   []string `yaml:"numerical_vars"`
	CategoricalVars []string `yaml:"categorical_vars"`
	TestSize        float64  `yaml:"test_size"`
}

// Config is the validated pipeline configuration. It is not mutated after construction.
type Config struct {
	App   AppConfig   `yaml:"app_config"`
	Model ModelConfig `yaml:"model_config"`
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Model.Features = cloneStrings(c.Model.Features)
	out.Model.NumericalVars = cloneStrings(c.Model.NumericalVars)
	out.Model.CategoricalVars = cloneStrings(c.Model.CategoricalVars)
	return out
}

// ValidateAppConfig reads the application schema from doc. Keys outside the schema are ignored.
func ValidateAppConfig(doc *Document) (AppConfig, error) {
	r := &schemaReader{schema: appSchema, doc: doc}
	cfg := AppConfig{
		PackageName:      r.text(keyPackageName),
		PipelineSaveFile: r.text(keyPipelineSaveFile),
		ClientDataFile:   r.text(keyClientDataFile),
		PriceDataFile:    r.text(keyPriceDataFile),
	}
	if r.err != nil {
		return AppConfig{}, r.err
	}
	return cfg, nil
}

// ValidateModelConfig reads the model schema from doc. Keys outside the schema are ignored.
func ValidateModelConfig(doc *Document) (ModelConfig, error) {
	r := &schemaReader{schema: modelSchema, doc: doc}
	cfg := ModelConfig{
		Target:          r.text(keyTarget),
		Features:        r.list(keyFeatures),
		RandomState:     r.integer(keyRandomState),
		NumericalVars:   r.list(keyNumericalVars),
		CategoricalVars: r.list(keyCategoricalVars),
		TestSize:        r.fraction(keyTestSize),
	}
	if r.err != nil {
		return ModelConfig{}, r.err
	}
	return cfg, nil
}

// newValidationError flattens multierr-combined field errors.
func newValidationError(err error) *ValidationError {
	verr := &ValidationError{}
	for _, e := range multierr.Errors(err) {
		var field *FieldError
		if errors.As(e, &field) {
			verr.Fields = append(verr.Fields, field)
			continue
		}
		verr.Fields = append(verr.Fields, &FieldError{Message: e.Error()})
	}
	return verr
}

type schemaReader struct {
	schema string
	doc    *Document
	err    error
}

func (r *schemaReader) fail(field, format string, args ...any) {
	r.err = multierr.Append(r.err, &FieldError{
		Schema:  r.schema,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *schemaReader) lookup(field string) (*yaml.Node, bool) {
	node, ok := r.doc.Lookup(field)
	if !ok {
		r.fail(field, "field required")
		return nil, false
	}
	return node, true
}

func (r *schemaReader) scalar(field, want string) (*yaml.Node, bool) {
	node, ok := r.lookup(field)
	if !ok {
		return nil, false
	}
	if !isValueScalar(node) {
		r.fail(field, "must be %s, got %s", want, describeNode(node))
		return nil, false
	}
	return node, true
}

func (r *schemaReader) text(field string) string {
	node, ok := r.scalar(field, "a string")
	if !ok {
		return ""
	}
	return node.Value
}

func (r *schemaReader) list(field string) []string {
	node, ok := r.lookup(field)
	if !ok {
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		r.fail(field, "must be a sequence of strings, got %s", describeNode(node))
		return nil
	}

	out := make([]string, 0, len(node.Content))
	valid := true
	for i, item := range node.Content {
		item = resolveAlias(item)
		if !isValueScalar(item) {
			r.fail(field, "item %d must be a string, got %s", i, describeNode(item))
			valid = false
			continue
		}
		out = append(out, item.Value)
	}
	if !valid {
		return nil
	}
	return out
}

func (r *schemaReader) integer(field string) int {
	node, ok := r.scalar(field, "an integer")
	if !ok {
		return 0
	}

	switch node.ShortTag() {
	case "!!int":
		var v int
		if err := node.Decode(&v); err == nil {
			return v
		}
	case "!!str":
		if v, err := strconv.Atoi(strings.TrimSpace(node.Value)); err == nil {
			return v
		}
	case "!!float":
		var f float64
		if err := node.Decode(&f); err == nil && f == float64(int(f)) {
			return int(f)
		}
	}

	r.fail(field, "must be an integer, got %s", describeNode(node))
	return 0
}

func (r *schemaReader) number(field string) (float64, bool) {
	node, ok := r.scalar(field, "a number")
	if !ok {
		return 0, false
	}

	switch node.ShortTag() {
	case "!!float":
		var v float64
		if err := node.Decode(&v); err == nil {
			return v, true
		}
	case "!!int", "!!str":
		if v, err := strconv.ParseFloat(strings.TrimSpace(node.Value), 64); err == nil {
			return v, true
		}
	}

	r.fail(field, "must be a number, got %s", describeNode(node))
	return 0, false
}

// fraction reads a float in the open interval (0, 1).
func (r *schemaReader) fraction(field string) float64 {
	v, ok := r.number(field)
	if !ok {
		return 0
	}
	if !(v > 0 && v < 1) {
		r.fail(field, "must be between 0 and 1 exclusive, got %v", v)
		return 0
	}
	return v
}

func isValueScalar(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() != "!!null"
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
