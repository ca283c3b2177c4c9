package domain

import (
	"bytes"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	mergeTag   = "!!merge"
	nullTag    = "!!null"
	boolTag    = "!!bool"
	intTag     = "!!int"
	floatTag   = "!!float"
	seqTag     = "!!seq"
	yamlIndent = 2
)

// sexagesimal matches YAML 1.1 base 60 numbers such as 1:30, which YAML 1.1
// readers load as integers.
var sexagesimal = regexp.MustCompile(`^[-+]?[0-9][0-9_]*(:[0-5]?[0-9])+(\.[0-9_]*)?$`)

// Document is one service's configuration: a YAML mapping kept as a node tree
// so that key order and comments survive a load, assign and save cycle.
type Document struct {
	doc  *yaml.Node
	root *yaml.Node
}

// NewDocument returns an empty mapping document.
func NewDocument() *Document {
	return wrap(newMapping())
}

func wrap(root *yaml.Node) *Document {
	return &Document{
		doc:  &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}},
		root: root,
	}
}

// ParseDocument decodes YAML bytes. Empty input is the empty mapping; any
// other top-level kind is ErrMalformedDocument.
func ParseDocument(data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return NewDocument(), nil
	}
	root := node.Content[0]

	// A document that only holds "~" or "null" carries no configuration.
	if root.Kind == yaml.ScalarNode && root.ShortTag() == nullTag {
		return NewDocument(), nil
	}

	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top-level value must be a mapping", ErrMalformedDocument)
	}

	return &Document{doc: &node, root: root}, nil
}

// Marshal encodes the document as YAML with a two-space indent.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(d.doc); err != nil {
		return nil, fmt.Errorf("failed to encode config document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config document: %w", err)
	}
	return buf.Bytes(), nil
}

// Resolve returns the node at path. Aliases and merge keys are followed. A
// missing key, or a non-mapping value at any step, is ErrPathNotFound. An
// explicit null at the path is a found value.
func (d *Document) Resolve(path DotPath) (*yaml.Node, error) {
	if len(path) == 0 {
		return nil, ErrInvalidPath
	}

	current := d.root
	for _, segment := range path {
		if current.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		child := lookup(current, segment, true)
		if child == nil {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		current = deref(child)
	}
	return current, nil
}

// Assign sets the value at path, creating empty mappings for missing
// intermediate segments. An existing key keeps its position. Descending
// through an existing non-mapping value is ErrPathConflict.
func (d *Document) Assign(path DotPath, value *yaml.Node) error {
	if len(path) == 0 {
		return ErrInvalidPath
	}

	current := d.root
	for i, segment := range path[:len(path)-1] {
		child := lookup(current, segment, false)
		if child == nil {
			created := newMapping()
			current.Content = append(current.Content, newKey(segment), created)
			current = created
			continue
		}

		resolved := deref(child)
		if resolved.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: %s is not a mapping", ErrPathConflict, path[:i+1])
		}
		current = resolved
	}

	setEntry(current, path[len(path)-1], value)
	return nil
}

// Value converts the whole document into ordered JSON-ready values.
func (d *Document) Value() (any, error) {
	return NodeToValue(d.root)
}

// lookup finds the value stored under key in mapping. With followMerges set,
// keys brought in by "<<" merge entries are searched after the explicit ones.
func lookup(mapping *yaml.Node, key string, followMerges bool) *yaml.Node {
	var merges []*yaml.Node

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k := deref(mapping.Content[i])
		if k.ShortTag() == mergeTag {
			merges = append(merges, mapping.Content[i+1])
			continue
		}
		if k.Value == key {
			return mapping.Content[i+1]
		}
	}

	if !followMerges {
		return nil
	}

	for _, m := range merges {
		for _, source := range mergeSources(m) {
			if found := lookup(source, key, true); found != nil {
				return found
			}
		}
	}
	return nil
}

// mergeSources returns the mappings referenced by a merge value, which is
// either a single mapping or a sequence of them.
func mergeSources(value *yaml.Node) []*yaml.Node {
	value = deref(value)
	switch value.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{value}
	case yaml.SequenceNode:
		var out []*yaml.Node
		for _, item := range value.Content {
			if item = deref(item); item.Kind == yaml.MappingNode {
				out = append(out, item)
			}
		}
		return out
	default:
		return nil
	}
}

func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

// setEntry replaces the value under key in mapping, keeping its position, or
// appends a new entry. Merge entries never match.
func setEntry(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k := deref(mapping.Content[i])
		if k.ShortTag() != mergeTag && k.Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content, newKey(key), value)
}

func newKey(key string) *yaml.Node {
	return newString(key)
}

// newString builds a !!str scalar. Strings whose plain form a YAML reader
// would load as something else are double quoted.
func newString(s string) *yaml.Node {
	n := &yaml.Node{}
	n.SetString(s)
	if plainIsAmbiguous(s) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// plainIsAmbiguous reports strings that yaml.v3 would emit plain although
// they do not read back as strings: the merge key and YAML 1.1 booleans and
// base 60 numbers.
func plainIsAmbiguous(s string) bool {
	switch s {
	case "<<",
		"y", "Y", "yes", "Yes", "YES", "n", "N", "no", "No", "NO",
		"on", "On", "ON", "off", "Off", "OFF":
		return true
	}
	return sexagesimal.MatchString(s)
}
