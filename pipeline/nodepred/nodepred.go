// Package nodepred generates node classification training pipelines: a
// commented YAML configuration from a few user choices, and a runnable
// training script from a (possibly hand-edited) configuration document.
package nodepred

import (
	"bytes"
	"embed"
	"net/http"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v2"

	"github.com/gnnpipe/gnnpipe/catalog"
	"github.com/gnnpipe/gnnpipe/pipeline"
	"github.com/gnnpipe/gnnpipe/templateset"
	"github.com/gnnpipe/gnnpipe/userconfig"
	"github.com/gnnpipe/gnnpipe/yamlutil"
)

// Name is the pipeline discriminator carried in pipeline_name.
const Name = "nodepred"

// dataBindExpr is the parameter-binding directive spliced into dataset
// construction calls. It is textual, resolved by the generated script at
// runtime, never evaluated here.
const dataBindExpr = `**cfg["data"]`

//go:embed templates
var templatesFS embed.FS

var templates = templateset.NewSet(http.FS(templatesFS), "templates", nil)

var pipelineComments = yamlutil.CommentMap{
	"node_embed_size": "The node learnable embedding size, -1 to disable",
	"num_epochs":      "Number of training epochs",
	"eval_period":     "Interval epochs between evaluations",
	"early_stop": map[string]interface{}{
		"patience":        "Steps before early stop",
		"checkpoint_path": "Early stop checkpoint model file path",
	},
}

func init() {
	pipeline.Register(Pipeline{})
}

// Pipeline implements pipeline.Pipeline for node classification.
type Pipeline struct{}

// Name ...
func (Pipeline) Name() string { return Name }

// Description ...
func (Pipeline) Description() string { return "Node classification pipeline" }

// GenerateConfig assembles a draft document from the user's choices,
// validates it, annotates it with hyperparameter comments, and writes it to
// opts.Output. It returns the absolute output path. Validation failures abort
// before anything is written.
func (Pipeline) GenerateConfig(fs afero.Fs, opts pipeline.ConfigOptions) (string, error) {
	draft := map[string]interface{}{
		"pipeline_name": Name,
		"device":        string(opts.Device),
		"data":          map[string]interface{}{"name": opts.Data},
		"model":         map[string]interface{}{"name": opts.Model},
	}
	cfg, err := userconfig.Validate(draft)
	if err != nil {
		return "", err
	}

	model, err := catalog.Model(cfg.ModelName())
	if err != nil {
		return "", err
	}
	comments := yamlutil.CommentMap{
		"general_pipeline": pipelineComments,
		"model":            model.ParamDocs(),
	}
	out, err := yamlutil.MarshalCommented(cfg.Dict(), comments)
	if err != nil {
		return "", err
	}

	if err := afero.WriteFile(fs, opts.Output, out, 0644); err != nil {
		return "", errors.Wrapf(err, "could not write configuration to %s", opts.Output)
	}
	abs, err := filepath.Abs(opts.Output)
	if err != nil {
		abs = opts.Output
	}
	return abs, nil
}

type scriptPayload struct {
	ModelCode          string
	ModelClassName     string
	DataImportCode     string
	DataInitializeCode string
	OptimizerName      string
	LossName           string
	CfgLiteral         string
}

// GenerateScript re-validates userCfg and renders the training script with
// the chosen model's source spliced in and the reduced configuration embedded
// as a literal. The input document is not mutated; the caller owns writing
// the returned text to disk.
func (Pipeline) GenerateScript(userCfg map[string]interface{}) (string, error) {
	cfg, err := userconfig.Validate(userCfg)
	if err != nil {
		return "", err
	}

	model, err := catalog.Model(cfg.ModelName())
	if err != nil {
		return "", err
	}
	dataset, err := catalog.Dataset(cfg.DataName())
	if err != nil {
		return "", err
	}
	code := dataset.GeneratedCode(dataBindExpr)

	optimizerName, _ := cfg.GeneralPipeline.Optimizer["name"].(string)
	payload := scriptPayload{
		ModelCode:          model.SourceCode,
		ModelClassName:     model.ClassName,
		DataImportCode:     code["data_import_code"],
		DataInitializeCode: code["data_initialize_code"],
		OptimizerName:      optimizerName,
		LossName:           cfg.GeneralPipeline.Loss,
		CfgLiteral:         "cfg = " + yamlutil.PyLiteral(reducedConfig(cfg)),
	}

	var buf bytes.Buffer
	if err := templates.Render(&buf, "nodepred.py.tmpl", payload); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// reducedConfig strips keys already implied by the generated script: the
// pipeline discriminator, the model and optimizer names (both substituted
// directly into the source), and the dataset section entirely when it carries
// nothing beyond its own name.
func reducedConfig(cfg *userconfig.Config) yaml.MapSlice {
	out := yaml.MapSlice{}
	for _, item := range cfg.Dict() {
		switch item.Key {
		case "pipeline_name":
		case "data":
			data := dropKey(item.Value.(yaml.MapSlice), "name")
			if len(data) > 0 {
				out = append(out, yaml.MapItem{Key: "data", Value: data})
			}
		case "model":
			out = append(out, yaml.MapItem{
				Key:   "model",
				Value: dropKey(item.Value.(yaml.MapSlice), "name"),
			})
		case "general_pipeline":
			gp := yaml.MapSlice{}
			for _, gpItem := range item.Value.(yaml.MapSlice) {
				if gpItem.Key == "optimizer" {
					gpItem.Value = dropKey(gpItem.Value.(yaml.MapSlice), "name")
				}
				gp = append(gp, gpItem)
			}
			out = append(out, yaml.MapItem{Key: "general_pipeline", Value: gp})
		default:
			out = append(out, item)
		}
	}
	return out
}

func dropKey(ms yaml.MapSlice, key string) yaml.MapSlice {
	out := yaml.MapSlice{}
	for _, item := range ms {
		if item.Key != key {
			out = append(out, item)
		}
	}
	return out
}
