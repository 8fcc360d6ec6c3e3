package yamlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	yaml "gopkg.in/yaml.v2"
)

func TestPyLiteralScalars(t *testing.T) {
	assert.Equal(t, "None", PyLiteral(nil))
	assert.Equal(t, "True", PyLiteral(true))
	assert.Equal(t, "False", PyLiteral(false))
	assert.Equal(t, "42", PyLiteral(42))
	assert.Equal(t, "-1", PyLiteral(-1))
	assert.Equal(t, "0.005", PyLiteral(0.005))
	assert.Equal(t, "'cpu'", PyLiteral("cpu"))
	assert.Equal(t, `'it\'s'`, PyLiteral("it's"))
}

func TestPyLiteralMapSliceKeepsOrder(t *testing.T) {
	ms := yaml.MapSlice{
		{Key: "lr", Value: 0.005},
		{Key: "betas", Value: []interface{}{0.9, 0.999}},
	}
	assert.Equal(t, "{'lr': 0.005, 'betas': [0.9, 0.999]}", PyLiteral(ms))
}

func TestPyLiteralPlainMapSorted(t *testing.T) {
	m := map[string]interface{}{"b": 1, "a": 2}
	assert.Equal(t, "{'a': 2, 'b': 1}", PyLiteral(m))
}

func TestPyLiteralNested(t *testing.T) {
	ms := yaml.MapSlice{
		{Key: "early_stop", Value: yaml.MapSlice{
			{Key: "patience", Value: 20},
			{Key: "checkpoint_path", Value: "checkpoint.pth"},
		}},
	}
	assert.Equal(t,
		"{'early_stop': {'patience': 20, 'checkpoint_path': 'checkpoint.pth'}}",
		PyLiteral(ms))
}
