package expression

import (
	"encoding/json"
	"fmt"
)

func (e *Expression) UnmarshalJSON(b []byte) error {
	// try to unmarshal as a bool terminal expression
	bv := false
	if err := json.Unmarshal(b, &bv); err == nil {
		*e = Expression{Op: "@bool", Literal: bv}
		return nil
	}

	// try to unmarshal as an int terminal expression
	var iv int64 = 0
	if err := json.Unmarshal(b, &iv); err == nil {
		*e = Expression{Op: "@int", Literal: iv}
		return nil
	}

	// try to unmarshal as a float terminal expression
	fv := 0.0
	if err := json.Unmarshal(b, &fv); err == nil {
		*e = Expression{Op: "@float", Literal: fv}
		return nil
	}

	// try to unmarshal as a string terminal expression, this includes array references
	sv := ""
	if err := json.Unmarshal(b, &sv); err == nil {
		*e = Expression{Op: "@string", Literal: sv}
		return nil
	}

	// try to unmarshal as a literal list expression
	mv := []Expression{}
	if err := json.Unmarshal(b, &mv); err == nil {
		*e = Expression{Op: "@list", Literal: mv}
		return nil
	}

	// try to unmarshal as a map expression
	cv := map[string]Expression{}
	if err := json.Unmarshal(b, &cv); err == nil {
		// an op has a single key that starts with @
		if len(cv) == 1 {
			for op, exp := range cv {
				if len(op) > 0 && op[0] == '@' {
					*e = Expression{Op: op, Arg: &exp}
					return nil
				}
			}
		}

		// literal map: store as exp with op @dict and map as Literal
		*e = Expression{Op: "@dict", Literal: cv}
		return nil
	}

	return NewUnmarshalError("expression", string(b))
}

func (e *Expression) MarshalJSON() ([]byte, error) {
	switch e.Op {
	case "@bool", "@int", "@float", "@string":
		if e.Arg != nil {
			// keep the op for a correct round-trip (conversion)
			return json.Marshal(map[string]*Expression{e.Op: e.Arg})
		}
		return json.Marshal(e.Literal)

	case "@list":
		if e.Arg != nil {
			return json.Marshal(e.Arg)
		}
		es, ok := e.Literal.([]Expression)
		if !ok {
			return nil, fmt.Errorf("invalid expression list: %#v", e)
		}
		return json.Marshal(es)

	case "@dict":
		if e.Arg != nil {
			return json.Marshal(e.Arg)
		}
		es, ok := e.Literal.(map[string]Expression)
		if !ok {
			return nil, fmt.Errorf("invalid expression map: %#v", e)
		}
		em := map[string]*Expression{}
		for k, v := range es {
			em[k] = &v
		}
		return json.Marshal(em)

	default:
		if len(e.Op) == 0 || e.Op[0] != '@' {
			return nil, fmt.Errorf("expected an op starting with @, got %#v", e)
		}
		return json.Marshal(map[string]*Expression{e.Op: e.Arg})
	}
}

func (e *Expression) String() string {
	b, err := json.Marshal(e)
	if err != nil {
		return ""
	}
	return string(b)
}

func (e *Expression) DeepCopyInto(out *Expression) {
	if e == nil || out == nil {
		return
	}
	*out = *e

	j, err := json.Marshal(e)
	if err != nil {
		return
	}

	if err := json.Unmarshal(j, out); err != nil {
		return
	}
}
