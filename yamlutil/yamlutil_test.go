package yamlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestStringMap(t *testing.T) {
	in := map[interface{}]interface{}{
		"a": map[interface{}]interface{}{"b": 1},
		"c": []interface{}{map[interface{}]interface{}{"d": true}},
	}
	out := StringMap(in).(map[string]interface{})
	assert.Equal(t, 1, out["a"].(map[string]interface{})["b"])
	elem := out["c"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, true, elem["d"])
}

func TestDeepConvertOrdersNameFirst(t *testing.T) {
	in := map[string]interface{}{
		"zeta": 1,
		"name": "gcn",
		"alpha": map[string]interface{}{
			"beta": 2,
		},
	}
	out := DeepConvert(in).(yaml.MapSlice)
	require.Len(t, out, 3)
	assert.Equal(t, "name", out[0].Key)
	assert.Equal(t, "alpha", out[1].Key)
	assert.Equal(t, "zeta", out[2].Key)

	nested := out[1].Value.(yaml.MapSlice)
	assert.Equal(t, "beta", nested[0].Key)
}

func TestDeepConvertKeepsMapSliceOrder(t *testing.T) {
	in := yaml.MapSlice{
		{Key: "z", Value: 1},
		{Key: "a", Value: 2},
	}
	out := DeepConvert(in).(yaml.MapSlice)
	assert.Equal(t, "z", out[0].Key)
	assert.Equal(t, "a", out[1].Key)
}

func TestMarshalCommented(t *testing.T) {
	doc := yaml.MapSlice{
		{Key: "general_pipeline", Value: yaml.MapSlice{
			{Key: "num_epochs", Value: 200},
			{Key: "eval_period", Value: 5},
		}},
	}
	comments := CommentMap{
		"general_pipeline": map[string]interface{}{
			"num_epochs": "Number of training epochs",
			"nonexistent": "Should never appear",
		},
	}
	out, err := MarshalCommented(doc, comments)
	require.NoError(t, err)
	assert.Contains(t, string(out), "num_epochs: 200 # Number of training epochs")
	assert.NotContains(t, string(out), "Should never appear")
}

func TestMarshalCommentedShapeMismatch(t *testing.T) {
	// A comment subtree pointing at a scalar must not fail the merge.
	doc := yaml.MapSlice{
		{Key: "loss", Value: "CrossEntropyLoss"},
	}
	comments := CommentMap{
		"loss": map[string]interface{}{"deeper": "never matches"},
	}
	out, err := MarshalCommented(doc, comments)
	require.NoError(t, err)
	assert.Contains(t, string(out), "loss: CrossEntropyLoss")
	assert.NotContains(t, string(out), "never matches")
}

func TestMergeCommentsAttachesAtExactPath(t *testing.T) {
	doc := yaml.MapSlice{
		{Key: "model", Value: yaml.MapSlice{
			{Key: "dropout", Value: 0.5},
		}},
		{Key: "dropout", Value: 0.1},
	}
	node, err := MergeComments(doc, CommentMap{
		"model": map[string]interface{}{"dropout": "Dropout rate"},
	})
	require.NoError(t, err)

	// Top-level dropout key carries no comment.
	require.Equal(t, 4, len(node.Content))
	assert.Empty(t, node.Content[2].LineComment)

	inner := node.Content[1]
	require.Equal(t, 2, len(inner.Content))
	assert.Equal(t, "Dropout rate", inner.Content[0].LineComment)
}
