package yamlutil

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
	yaml3 "gopkg.in/yaml.v3"
)

// CommentMap mirrors the shape of a configuration document. A string leaf is
// the comment for the key at that path; a nested map descends into the
// corresponding sub-document.
type CommentMap map[string]interface{}

// StringMap recursively rewrites the interface-keyed maps produced by
// yaml.Unmarshal into string-keyed maps so documents can be handled uniformly.
func StringMap(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = StringMap(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = StringMap(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, val := range t {
			out = append(out, StringMap(val))
		}
		return out
	default:
		return v
	}
}

// DeepConvert recursively converts a document into an ordered yaml.MapSlice
// tree. Map keys are emitted with "name" first (it is the discriminator for
// dataset and model sections) and the rest sorted, so serialized output is
// deterministic.
func DeepConvert(v interface{}) interface{} {
	switch t := v.(type) {
	case yaml.MapSlice:
		out := make(yaml.MapSlice, 0, len(t))
		for _, item := range t {
			out = append(out, yaml.MapItem{Key: item.Key, Value: DeepConvert(item.Value)})
		}
		return out
	case map[string]interface{}:
		return convertMap(t)
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = val
		}
		return convertMap(m)
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, val := range t {
			out = append(out, DeepConvert(val))
		}
		return out
	default:
		return v
	}
}

func convertMap(m map[string]interface{}) yaml.MapSlice {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k == "name" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if _, ok := m["name"]; ok {
		keys = append([]string{"name"}, keys...)
	}
	out := make(yaml.MapSlice, 0, len(keys))
	for _, k := range keys {
		out = append(out, yaml.MapItem{Key: k, Value: DeepConvert(m[k])})
	}
	return out
}

// MergeComments builds an annotated yaml node tree from doc, attaching each
// comment whose path exists in doc as an inline comment on that key. Comments
// for paths absent from doc are dropped silently; the merge never fails on a
// shape mismatch.
func MergeComments(doc interface{}, comments CommentMap) (*yaml3.Node, error) {
	return buildNode(DeepConvert(doc), comments)
}

// MarshalCommented serializes doc to YAML with the matching entries of
// comments attached as inline annotations.
func MarshalCommented(doc interface{}, comments CommentMap) ([]byte, error) {
	node, err := MergeComments(doc, comments)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, errors.Wrapf(err, "could not serialize commented document")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrapf(err, "could not serialize commented document")
	}
	return buf.Bytes(), nil
}

func buildNode(v interface{}, comments interface{}) (*yaml3.Node, error) {
	switch t := v.(type) {
	case yaml.MapSlice:
		node := &yaml3.Node{Kind: yaml3.MappingNode, Tag: "!!map"}
		for _, item := range t {
			key := fmt.Sprint(item.Key)
			keyNode := &yaml3.Node{Kind: yaml3.ScalarNode, Tag: "!!str", Value: key}
			comment, sub := commentFor(comments, key)
			if comment != "" {
				keyNode.LineComment = comment
			}
			valNode, err := buildNode(item.Value, sub)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, keyNode, valNode)
		}
		return node, nil
	case []interface{}:
		node := &yaml3.Node{Kind: yaml3.SequenceNode, Tag: "!!seq"}
		for _, elem := range t {
			child, err := buildNode(elem, nil)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml3.Node{}
		if err := node.Encode(v); err != nil {
			return nil, errors.Wrapf(err, "could not encode value %v", v)
		}
		return node, nil
	}
}

// commentFor resolves the comment entry for key: a string leaf is the comment
// itself, a nested map is handed down for the children of that key.
func commentFor(comments interface{}, key string) (string, interface{}) {
	var m map[string]interface{}
	switch t := comments.(type) {
	case CommentMap:
		m = t
	case map[string]interface{}:
		m = t
	default:
		return "", nil
	}
	switch entry := m[key].(type) {
	case string:
		return entry, nil
	case nil:
		return "", nil
	default:
		return "", entry
	}
}
