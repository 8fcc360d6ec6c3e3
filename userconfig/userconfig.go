// Package userconfig defines the configuration document for generated
// training pipelines and validates untyped documents against it. The dataset
// and model sections are discriminated by their "name" key against the
// catalog registries; everything else is a fixed shape with documented
// defaults.
package userconfig

import (
	"github.com/asaskevich/govalidator"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/gnnpipe/gnnpipe/catalog"
	"github.com/gnnpipe/gnnpipe/yamlutil"
)

// Device is the target device for training.
type Device string

// Supported devices.
const (
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
)

// ParseDevice ...
func ParseDevice(s string) (Device, error) {
	switch Device(s) {
	case DeviceCPU, DeviceCUDA:
		return Device(s), nil
	default:
		return "", errors.Errorf("unknown device %q, must be cpu or cuda", s)
	}
}

// EarlyStopConfig controls the early stopping policy.
type EarlyStopConfig struct {
	Patience       int    `yaml:"patience"`
	CheckpointPath string `yaml:"checkpoint_path"`
}

// NodepredPipelineCfg holds the pipeline-level hyperparameters of the node
// prediction pipeline.
type NodepredPipelineCfg struct {
	NodeEmbedSize int                    `yaml:"node_embed_size"`
	EarlyStop     *EarlyStopConfig       `yaml:"early_stop,omitempty"`
	NumEpochs     int                    `yaml:"num_epochs" valid:"required"`
	EvalPeriod    int                    `yaml:"eval_period" valid:"required"`
	Optimizer     map[string]interface{} `yaml:"optimizer" valid:"-"`
	Loss          string                 `yaml:"loss" valid:"required"`
}

// DefaultPipelineCfg returns the documented nodepred hyperparameter defaults.
func DefaultPipelineCfg() NodepredPipelineCfg {
	return NodepredPipelineCfg{
		NodeEmbedSize: -1,
		EarlyStop: &EarlyStopConfig{
			Patience:       20,
			CheckpointPath: "checkpoint.pth",
		},
		NumEpochs:  200,
		EvalPeriod: 5,
		Loss:       "CrossEntropyLoss",
	}
}

// DefaultOptimizer returns the default optimizer descriptor.
func DefaultOptimizer() map[string]interface{} {
	return map[string]interface{}{"name": "Adam", "lr": 0.005}
}

// Config is the top-level configuration document.
type Config struct {
	PipelineName    string                 `yaml:"pipeline_name" valid:"required"`
	Device          Device                 `yaml:"device" valid:"required,in(cpu|cuda)"`
	Data            map[string]interface{} `yaml:"data" valid:"-"`
	Model           map[string]interface{} `yaml:"model" valid:"-"`
	GeneralPipeline NodepredPipelineCfg    `yaml:"general_pipeline"`
}

// Validate constructs a Config from an untyped document. Missing optional
// fields receive their defaults, the fixed shape is checked declaratively,
// and the data/model sections are validated against the catalog variant
// selected by their "name" key, with the variant's own defaults filled in.
// The input document is never mutated.
func Validate(raw map[string]interface{}) (*Config, error) {
	buf, err := yaml.Marshal(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "could not encode configuration")
	}
	cfg := Config{GeneralPipeline: DefaultPipelineCfg()}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, errors.Wrapf(err, "malformed configuration")
	}
	if cfg.GeneralPipeline.Optimizer == nil {
		cfg.GeneralPipeline.Optimizer = DefaultOptimizer()
	}

	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration")
	}

	if len(cfg.Data) == 0 {
		return nil, errors.Errorf("data: section is required")
	}
	if len(cfg.Model) == 0 {
		return nil, errors.Errorf("model: section is required")
	}
	cfg.Data = yamlutil.StringMap(cfg.Data).(map[string]interface{})
	cfg.Model = yamlutil.StringMap(cfg.Model).(map[string]interface{})
	cfg.GeneralPipeline.Optimizer = yamlutil.StringMap(cfg.GeneralPipeline.Optimizer).(map[string]interface{})
	if _, ok := cfg.GeneralPipeline.Optimizer["name"].(string); !ok {
		return nil, errors.Errorf("general_pipeline.optimizer.name: an optimizer name is required")
	}

	dataName, ok := cfg.Data["name"].(string)
	if !ok {
		return nil, errors.Errorf("data.name: a registered dataset name is required")
	}
	ds, err := catalog.Dataset(dataName)
	if err != nil {
		return nil, errors.Wrapf(err, "data.name")
	}
	catalog.ApplyDefaults(ds.Params, cfg.Data)
	if err := catalog.ValidateParams(ds.Params, cfg.Data); err != nil {
		return nil, errors.Wrapf(err, "data")
	}

	modelName, ok := cfg.Model["name"].(string)
	if !ok {
		return nil, errors.Errorf("model.name: a registered model name is required")
	}
	m, err := catalog.Model(modelName)
	if err != nil {
		return nil, errors.Wrapf(err, "model.name")
	}
	catalog.ApplyDefaults(m.Params, cfg.Model)
	if err := catalog.ValidateParams(m.Params, cfg.Model); err != nil {
		return nil, errors.Wrapf(err, "model")
	}

	return &cfg, nil
}

// DataName returns the dataset discriminator. Only meaningful on a validated
// Config.
func (c *Config) DataName() string {
	name, _ := c.Data["name"].(string)
	return name
}

// ModelName returns the model discriminator. Only meaningful on a validated
// Config.
func (c *Config) ModelName() string {
	name, _ := c.Model["name"].(string)
	return name
}

// Dict converts the config back to an ordered plain mapping with every value
// reduced to its primitive serializable form. Section keys keep the "name"
// discriminator first and follow the catalog's declared parameter order.
func (c *Config) Dict() yaml.MapSlice {
	var dataParams, modelParams []catalog.Param
	if ds, err := catalog.Dataset(c.DataName()); err == nil {
		dataParams = ds.Params
	}
	if m, err := catalog.Model(c.ModelName()); err == nil {
		modelParams = m.Params
	}

	return yaml.MapSlice{
		{Key: "pipeline_name", Value: c.PipelineName},
		{Key: "device", Value: string(c.Device)},
		{Key: "data", Value: sectionDict(c.Data, dataParams)},
		{Key: "model", Value: sectionDict(c.Model, modelParams)},
		{Key: "general_pipeline", Value: c.GeneralPipeline.dict()},
	}
}

func (p NodepredPipelineCfg) dict() yaml.MapSlice {
	out := yaml.MapSlice{
		{Key: "node_embed_size", Value: p.NodeEmbedSize},
	}
	if p.EarlyStop != nil {
		out = append(out, yaml.MapItem{Key: "early_stop", Value: yaml.MapSlice{
			{Key: "patience", Value: p.EarlyStop.Patience},
			{Key: "checkpoint_path", Value: p.EarlyStop.CheckpointPath},
		}})
	}
	out = append(out,
		yaml.MapItem{Key: "num_epochs", Value: p.NumEpochs},
		yaml.MapItem{Key: "eval_period", Value: p.EvalPeriod},
		yaml.MapItem{Key: "optimizer", Value: yamlutil.DeepConvert(p.Optimizer)},
		yaml.MapItem{Key: "loss", Value: p.Loss},
	)
	return out
}

// sectionDict orders a data/model section: name first, declared params in
// declaration order, then anything else sorted.
func sectionDict(section map[string]interface{}, params []catalog.Param) yaml.MapSlice {
	out := yaml.MapSlice{}
	if name, ok := section["name"]; ok {
		out = append(out, yaml.MapItem{Key: "name", Value: name})
	}
	seen := map[string]bool{"name": true}
	for _, p := range params {
		if v, ok := section[p.Name]; ok {
			out = append(out, yaml.MapItem{Key: p.Name, Value: yamlutil.DeepConvert(v)})
			seen[p.Name] = true
		}
	}
	rest := map[string]interface{}{}
	for k, v := range section {
		if !seen[k] {
			rest[k] = v
		}
	}
	if len(rest) > 0 {
		for _, item := range yamlutil.DeepConvert(rest).(yaml.MapSlice) {
			out = append(out, item)
		}
	}
	return out
}
