// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes v as JSON, keeping mapping keys in insertion
// order. Tagged values cannot be represented and return an error;
// they never survive the pipeline into an output stage.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *Value) error {
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool, KindInt, KindFloat:
		buf.WriteString(v.Render())
	case KindString:
		b, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindSequence:
		buf.WriteByte('[')
		for i, e := range v.Seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')
		for i, e := range v.Map {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := jsonKey(e.Key)
			if err != nil {
				return err
			}
			b, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(b)
			buf.WriteByte(':')
			if err := writeJSON(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindTagged:
		return fmt.Errorf("tagged value %s cannot be encoded as JSON", v.Tag)
	default:
		return fmt.Errorf("unknown value kind %d", v.Kind)
	}
	return nil
}

func jsonKey(k *Value) (string, error) {
	switch k.Kind {
	case KindString, KindInt, KindFloat, KindBool:
		return k.Render(), nil
	}
	return "", fmt.Errorf("%s cannot be used as a JSON object key", k.Kind)
}

// ToJSONValue converts v into the generic JSON representation used by
// the schema validator (map[string]any, []any, scalars).
func (v *Value) ToJSONValue() (any, error) {
	switch v.Kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.Bool, nil
	case KindInt:
		return v.Int, nil
	case KindFloat:
		return v.Float, nil
	case KindString:
		return v.Str, nil
	case KindSequence:
		out := make([]any, len(v.Seq))
		for i, e := range v.Seq {
			conv, err := e.ToJSONValue()
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case KindMapping:
		out := make(map[string]any, len(v.Map))
		for _, e := range v.Map {
			key, err := jsonKey(e.Key)
			if err != nil {
				return nil, err
			}
			conv, err := e.Value.ToJSONValue()
			if err != nil {
				return nil, err
			}
			out[key] = conv
		}
		return out, nil
	case KindTagged:
		return nil, fmt.Errorf("tagged value %s cannot be converted to JSON", v.Tag)
	}
	return nil, fmt.Errorf("unknown value kind %d", v.Kind)
}
