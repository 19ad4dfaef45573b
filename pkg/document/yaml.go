// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes YAML source into a Value. Tags and mapping key order are
// preserved. An empty document decodes to null.
func Parse(data []byte) (*Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return FromNode(&node)
}

// FromNode converts a decoded yaml.Node into a Value.
func FromNode(n *yaml.Node) (*Value, error) {
	if n == nil || n.Kind == 0 {
		return Null(), nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return FromNode(n.Content[0])
	case yaml.AliasNode:
		return FromNode(n.Alias)
	case yaml.ScalarNode:
		if isCustomTag(n.Tag) {
			return Tagged(n.Tag, resolveScalar(n.Value)), nil
		}
		return scalarFromNode(n)
	case yaml.SequenceNode:
		seq := make([]*Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := FromNode(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		val := &Value{Kind: KindSequence, Seq: seq}
		if isCustomTag(n.Tag) {
			return Tagged(n.Tag, val), nil
		}
		return val, nil
	case yaml.MappingNode:
		m := &Value{Kind: KindMapping, Map: make([]MapEntry, 0, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := FromNode(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := FromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Map = append(m.Map, MapEntry{Key: k, Value: v})
		}
		if isCustomTag(n.Tag) {
			return Tagged(n.Tag, m), nil
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
}

// isCustomTag reports whether tag is an application tag like "!mix",
// as opposed to a core-schema tag like "!!str" or no tag at all.
func isCustomTag(tag string) bool {
	return strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!")
}

func scalarFromNode(n *yaml.Node) (*Value, error) {
	switch n.Tag {
	case "!!null", "":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return nil, fmt.Errorf("invalid bool scalar %q", n.Value)
		}
		return Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int scalar %q", n.Value)
		}
		return Int(i), nil
	case "!!float":
		f, err := parseYAMLFloat(n.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid float scalar %q", n.Value)
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

// resolveScalar applies core-schema resolution to the raw text of a
// scalar that carried a custom tag, since the parser keeps only the
// custom tag.
func resolveScalar(s string) *Value {
	switch s {
	case "", "~", "null", "Null", "NULL":
		return Null()
	case "true", "True", "TRUE":
		return Bool(true)
	case "false", "False", "FALSE":
		return Bool(false)
	}
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return Int(i)
	}
	if f, err := parseYAMLFloat(s); err == nil {
		return Float(f)
	}
	return String(s)
}

func parseYAMLFloat(s string) (float64, error) {
	switch s {
	case ".inf", ".Inf", ".INF", "+.inf":
		return math.Inf(1), nil
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), nil
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// ToNode converts a Value into a yaml.Node ready for encoding.
func ToNode(v *Value) *yaml.Node {
	switch v.Kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool)}
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int, 10)}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatYAMLFloat(v.Float)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str}
	case KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.Seq {
			n.Content = append(n.Content, ToNode(e))
		}
		return n
	case KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.Map {
			n.Content = append(n.Content, ToNode(e.Key), ToNode(e.Value))
		}
		return n
	case KindTagged:
		n := ToNode(v.Inner)
		n.Tag = v.Tag
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func formatYAMLFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// MarshalYAML encodes v as a YAML document.
func MarshalYAML(v *Value) ([]byte, error) {
	return yaml.Marshal(ToNode(v))
}
