package expression

import (
	"fmt"
	"strings"

	"github.com/grokify/mogo/encoding/base36"
	"github.com/ohler55/ojg/jp"
	"k8s.io/apimachinery/pkg/util/json"
)

// Query evaluates a JSONPath query on the serialized form of a value and returns the first
// match, or nil if nothing matches. The leading "$" of the path is optional and is best left
// out in expressions, where a leading "$" marks an array reference.
func Query(v any, path string) (any, error) {
	if !strings.HasPrefix(path, "$") {
		if strings.HasPrefix(path, "[") {
			path = "$" + path
		} else {
			path = "$." + path
		}
	}

	je, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", path, err)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var data any
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, err
	}

	values := je.Get(data)
	if len(values) == 0 {
		return nil, nil
	}

	return values[0], nil
}

// Hash returns a base36 content hash of the serialized form of a value.
func Hash(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base36.Md5Base36(string(b)), nil
}
