package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// maxAliasDepth bounds alias expansion so that recursive anchors cannot loop.
const maxAliasDepth = 64

var integerLiteral = regexp.MustCompile(`^[-+]?[0-9]+$`)

// NodeToValue converts a YAML node into values that encode to JSON in document
// order: mappings become *orderedmap.OrderedMap[string, any], sequences []any
// and scalars their native Go value.
func NodeToValue(node *yaml.Node) (any, error) {
	return nodeToValue(node, 0)
}

func nodeToValue(node *yaml.Node, depth int) (any, error) {
	if node == nil {
		return nil, nil
	}
	if depth > maxAliasDepth {
		return nil, fmt.Errorf("%w: alias nesting too deep", ErrMalformedDocument)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return nodeToValue(node.Content[0], depth)

	case yaml.AliasNode:
		return nodeToValue(node.Alias, depth+1)

	case yaml.MappingNode:
		out := orderedmap.New[string, any]()
		if err := mergeInto(out, node, depth); err != nil {
			return nil, err
		}
		return out, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := nodeToValue(item, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		return scalarValue(node)

	default:
		return nil, fmt.Errorf("%w: unsupported node kind %d", ErrMalformedDocument, node.Kind)
	}
}

// mergeInto copies the entries of mapping into out. Explicit keys win over
// keys brought in through "<<" merges, matching YAML merge key semantics.
func mergeInto(out *orderedmap.OrderedMap[string, any], mapping *yaml.Node, depth int) error {
	var merges []*yaml.Node

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := deref(mapping.Content[i])
		if key.ShortTag() == mergeTag {
			merges = append(merges, mapping.Content[i+1])
			continue
		}
		v, err := nodeToValue(mapping.Content[i+1], depth)
		if err != nil {
			return err
		}
		out.Set(key.Value, v)
	}

	for _, m := range merges {
		for _, source := range mergeSources(m) {
			merged := orderedmap.New[string, any]()
			if err := mergeInto(merged, source, depth+1); err != nil {
				return err
			}
			for pair := merged.Oldest(); pair != nil; pair = pair.Next() {
				if _, exists := out.Get(pair.Key); !exists {
					out.Set(pair.Key, pair.Value)
				}
			}
		}
	}
	return nil
}

func scalarValue(node *yaml.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if f, ok := v.(float64); ok {
		// Integers outside the int64/uint64 range resolve as floats; keep their digits.
		if integerLiteral.MatchString(node.Value) {
			return json.Number(strings.TrimPrefix(node.Value, "+")), nil
		}
		// JSON has no representation for infinities or NaN; keep the YAML text.
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return node.Value, nil
		}
	}
	return v, nil
}

// ValueFromJSON parses a JSON value into a YAML node ready to be assigned.
//
// The value is read token by token with encoding/json so object key order is
// kept and number literals are copied verbatim. Trailing data after the value
// is rejected.
func ValueFromJSON(raw []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidValue)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	node, err := decodeJSONNode(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after value", ErrInvalidValue)
	}
	return node, nil
}

func decodeJSONNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected %q", t)
		}
	case string:
		return newString(t), nil
	case json.Number:
		return newNumber(t), nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: boolTag, Value: strconv.FormatBool(t)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: nullTag, Value: "null"}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (*yaml.Node, error) {
	mapping := newMapping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string")
		}
		value, err := decodeJSONNode(dec)
		if err != nil {
			return nil, err
		}
		setEntry(mapping, key, value)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return mapping, nil
}

func decodeJSONArray(dec *json.Decoder) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: seqTag}
	for dec.More() {
		item, err := decodeJSONNode(dec)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, item)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return seq, nil
}

// newNumber tags a JSON number the way a YAML reader resolves its plain text:
// integers that fit int64 or uint64 are !!int, everything else !!float.
func newNumber(n json.Number) *yaml.Node {
	text := n.String()
	tag := floatTag
	if integerLiteral.MatchString(text) {
		if _, err := strconv.ParseInt(text, 10, 64); err == nil {
			tag = intTag
		} else if _, err := strconv.ParseUint(text, 10, 64); err == nil {
			tag = intTag
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}
