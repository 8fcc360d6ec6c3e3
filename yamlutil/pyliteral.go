package yamlutil

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// PyLiteral renders a document as a Python literal expression, suitable for
// splicing into generated source. Map order follows MapSlice order; plain
// maps are emitted with sorted keys.
func PyLiteral(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		return pyQuote(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case yaml.MapSlice:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, pyQuote(fmt.Sprint(item.Key))+": "+PyLiteral(item.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, pyQuote(k)+": "+PyLiteral(t[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, elem := range t {
			parts = append(parts, PyLiteral(elem))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", t)
	}
}

func pyQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
