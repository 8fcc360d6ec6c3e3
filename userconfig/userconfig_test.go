package userconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func minimalDoc() map[string]interface{} {
	return map[string]interface{}{
		"pipeline_name": "nodepred",
		"device":        "cpu",
		"data":          map[string]interface{}{"name": "cora"},
		"model":         map[string]interface{}{"name": "gcn"},
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg, err := Validate(minimalDoc())
	require.NoError(t, err)

	assert.Equal(t, -1, cfg.GeneralPipeline.NodeEmbedSize)
	assert.Equal(t, 200, cfg.GeneralPipeline.NumEpochs)
	assert.Equal(t, 5, cfg.GeneralPipeline.EvalPeriod)
	assert.Equal(t, "CrossEntropyLoss", cfg.GeneralPipeline.Loss)
	assert.Equal(t, "Adam", cfg.GeneralPipeline.Optimizer["name"])
	assert.Equal(t, 0.005, cfg.GeneralPipeline.Optimizer["lr"])
	require.NotNil(t, cfg.GeneralPipeline.EarlyStop)
	assert.Equal(t, 20, cfg.GeneralPipeline.EarlyStop.Patience)
	assert.Equal(t, "checkpoint.pth", cfg.GeneralPipeline.EarlyStop.CheckpointPath)

	// Model params get the catalog defaults of the selected variant.
	assert.Equal(t, 16, cfg.Model["hidden_size"])
	assert.Equal(t, "both", cfg.Model["norm"])
}

func TestValidateOverrides(t *testing.T) {
	doc := minimalDoc()
	doc["device"] = "cuda"
	doc["general_pipeline"] = map[string]interface{}{
		"num_epochs": 100,
		"early_stop": map[string]interface{}{"patience": 10},
	}
	doc["model"] = map[string]interface{}{"name": "gcn", "hidden_size": 64}

	cfg, err := Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, DeviceCUDA, cfg.Device)
	assert.Equal(t, 100, cfg.GeneralPipeline.NumEpochs)
	assert.Equal(t, 5, cfg.GeneralPipeline.EvalPeriod)
	assert.Equal(t, 10, cfg.GeneralPipeline.EarlyStop.Patience)
	assert.Equal(t, "checkpoint.pth", cfg.GeneralPipeline.EarlyStop.CheckpointPath)
	assert.Equal(t, 64, cfg.Model["hidden_size"])
}

func TestValidateUnknownVariant(t *testing.T) {
	doc := minimalDoc()
	doc["model"] = map[string]interface{}{"name": "resnet"}
	_, err := Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model.name")
	assert.Contains(t, err.Error(), `unknown model "resnet"`)

	doc = minimalDoc()
	doc["data"] = map[string]interface{}{"name": "imagenet"}
	_, err = Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.name")
}

func TestValidateBadDevice(t *testing.T) {
	doc := minimalDoc()
	doc["device"] = "tpu"
	_, err := Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in(cpu|cuda)")
}

func TestValidateMissingSections(t *testing.T) {
	doc := minimalDoc()
	delete(doc, "data")
	_, err := Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data")

	doc = minimalDoc()
	delete(doc, "pipeline_name")
	_, err = Validate(doc)
	require.Error(t, err)
}

func TestValidateOptimizerNeedsName(t *testing.T) {
	doc := minimalDoc()
	doc["general_pipeline"] = map[string]interface{}{
		"optimizer": map[string]interface{}{"lr": 0.1},
	}
	_, err := Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "optimizer.name")
}

func TestValidateBadParamType(t *testing.T) {
	doc := minimalDoc()
	doc["model"] = map[string]interface{}{"name": "gcn", "hidden_size": "big"}
	_, err := Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hidden_size")
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	doc := minimalDoc()
	_, err := Validate(doc)
	require.NoError(t, err)
	// Catalog defaults land on the validated config, never on the input.
	assert.Equal(t, map[string]interface{}{"name": "gcn"}, doc["model"])
	assert.Equal(t, map[string]interface{}{"name": "cora"}, doc["data"])
}

func TestParseDevice(t *testing.T) {
	d, err := ParseDevice("cuda")
	require.NoError(t, err)
	assert.Equal(t, DeviceCUDA, d)

	_, err = ParseDevice("tpu")
	require.Error(t, err)
}

func TestDictOrder(t *testing.T) {
	cfg, err := Validate(minimalDoc())
	require.NoError(t, err)

	doc := cfg.Dict()
	require.Len(t, doc, 5)
	assert.Equal(t, "pipeline_name", doc[0].Key)
	assert.Equal(t, "device", doc[1].Key)
	assert.Equal(t, "data", doc[2].Key)
	assert.Equal(t, "model", doc[3].Key)
	assert.Equal(t, "general_pipeline", doc[4].Key)

	model := doc[3].Value.(yaml.MapSlice)
	assert.Equal(t, "name", model[0].Key)
	assert.Equal(t, "embed_size", model[1].Key)

	gp := doc[4].Value.(yaml.MapSlice)
	assert.Equal(t, "node_embed_size", gp[0].Key)
	assert.Equal(t, "loss", gp[len(gp)-1].Key)
}

func TestDictRoundTrip(t *testing.T) {
	cfg, err := Validate(minimalDoc())
	require.NoError(t, err)

	buf, err := yaml.Marshal(cfg.Dict())
	require.NoError(t, err)

	var parsed map[interface{}]interface{}
	require.NoError(t, yaml.Unmarshal(buf, &parsed))

	reparsed := make(map[string]interface{}, len(parsed))
	for k, v := range parsed {
		reparsed[k.(string)] = v
	}
	again, err := Validate(reparsed)
	require.NoError(t, err)
	assert.Equal(t, cfg.Dict(), again.Dict())
}
