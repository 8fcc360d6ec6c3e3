// Package catalog is the registry of node-prediction model architectures and
// datasets the generator knows how to emit code for. Each entry carries the
// schema fragment for its configuration section alongside the source snippets
// spliced into generated training scripts.
package catalog

import (
	"sort"

	"github.com/pkg/errors"
)

// Param is one configurable field of a model or dataset section. Default
// doubles as the schema fragment: its dynamic type is what values for the
// field must conform to.
type Param struct {
	Name    string
	Default interface{}
	Doc     string
}

// ModelEntry ...
type ModelEntry struct {
	Name       string
	ClassName  string
	SourceCode string
	Params     []Param
}

// ParamDocs returns the constructor-parameter documentation keyed by field
// name, shaped for comment merging.
func (e ModelEntry) ParamDocs() map[string]interface{} {
	docs := make(map[string]interface{}, len(e.Params))
	for _, p := range e.Params {
		if p.Doc != "" {
			docs[p.Name] = p.Doc
		}
	}
	return docs
}

// DatasetEntry ...
type DatasetEntry struct {
	Name       string
	Params     []Param
	ImportCode string
	// LoadCode renders the dataset construction statement. bind is a
	// parameter-binding directive spliced textually into the generated
	// source, never evaluated here.
	LoadCode func(bind string) string
}

// GeneratedCode returns the code fragments for this dataset, keyed the way
// the script template expects them.
func (e DatasetEntry) GeneratedCode(bind string) map[string]string {
	return map[string]string{
		"data_import_code":     e.ImportCode,
		"data_initialize_code": e.LoadCode(bind),
	}
}

// ApplyDefaults fills missing params of section with their defaults.
func ApplyDefaults(params []Param, section map[string]interface{}) {
	for _, p := range params {
		if _, ok := section[p.Name]; !ok {
			section[p.Name] = p.Default
		}
	}
}

// ValidateParams checks that every declared param present in section has a
// value conforming to the param's schema fragment. Keys outside the declared
// set are ignored, matching the tolerant schema of the config format.
func ValidateParams(params []Param, section map[string]interface{}) error {
	for _, p := range params {
		v, ok := section[p.Name]
		if !ok {
			continue
		}
		if err := checkKind(p.Default, v); err != nil {
			return errors.Wrapf(err, "%s", p.Name)
		}
	}
	return nil
}

func checkKind(def, v interface{}) error {
	switch def.(type) {
	case int:
		if _, ok := v.(int); !ok {
			return errors.Errorf("expected an integer, got %v", v)
		}
	case float64:
		switch v.(type) {
		case int, float64:
		default:
			return errors.Errorf("expected a number, got %v", v)
		}
	case string:
		if _, ok := v.(string); !ok {
			return errors.Errorf("expected a string, got %v", v)
		}
	case bool:
		if _, ok := v.(bool); !ok {
			return errors.Errorf("expected a boolean, got %v", v)
		}
	}
	return nil
}

var (
	models   = make(map[string]ModelEntry)
	datasets = make(map[string]DatasetEntry)
)

// RegisterModel ...
func RegisterModel(e ModelEntry) {
	models[e.Name] = e
}

// RegisterDataset ...
func RegisterDataset(e DatasetEntry) {
	datasets[e.Name] = e
}

// Model looks up a registered model architecture by name.
func Model(name string) (ModelEntry, error) {
	e, ok := models[name]
	if !ok {
		return ModelEntry{}, errors.Errorf("unknown model %q, registered models: %v", name, ModelNames())
	}
	return e, nil
}

// Dataset looks up a registered dataset by name.
func Dataset(name string) (DatasetEntry, error) {
	e, ok := datasets[name]
	if !ok {
		return DatasetEntry{}, errors.Errorf("unknown dataset %q, registered datasets: %v", name, DatasetNames())
	}
	return e, nil
}

// ModelNames returns the registered model names, sorted.
func ModelNames() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DatasetNames returns the registered dataset names, sorted.
func DatasetNames() []string {
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
