package parse

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/jdoc-format/go-jdoc/ir"
)

// ParseYAML builds a node tree from YAML text. Mapping order is preserved.
// Read options are accepted for symmetry with Parse but do not affect YAML
// input; nodes are heap allocated.
func ParseYAML(data []byte, opts ...Option) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, &ParseError{Offset: -1, Msg: err.Error(), Err: err}
	}
	return fromYAML(v)
}

func fromYAML(v any) (*ir.Node, error) {
	switch y := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(y), nil
	case string:
		return ir.FromString(y), nil
	case int:
		if y < 0 {
			return ir.FromInt(int64(y)), nil
		}
		return ir.FromUint(uint64(y)), nil
	case int64:
		if y < 0 {
			return ir.FromInt(y), nil
		}
		return ir.FromUint(uint64(y)), nil
	case uint64:
		return ir.FromUint(y), nil
	case float32:
		return ir.FromFloat(float64(y)), nil
	case float64:
		return ir.FromFloat(y), nil
	case []any:
		elems := make([]*ir.Node, len(y))
		for i, e := range y {
			n, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			elems[i] = n
		}
		return ir.FromSlice(elems), nil
	case yaml.MapSlice:
		members := make([]ir.Member, len(y))
		for i, item := range y {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			n, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			members[i] = ir.Member{Key: key, Val: n}
		}
		return ir.FromMembers(members), nil
	case map[string]any:
		nodes := make(map[string]*ir.Node, len(y))
		for k, e := range y {
			n, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			nodes[k] = n
		}
		return ir.FromMap(nodes), nil
	default:
		return nil, &ParseError{Offset: -1, Msg: fmt.Sprintf("unsupported YAML value of type %T", v)}
	}
}
