// Package metadata merges generated head metadata into front matter.
package metadata

import (
	"gopkg.in/yaml.v3"
)

// HeadKey is the reserved front matter key the generated metadata lives under.
const HeadKey = "head"

// Keys of the fields managed inside the head mapping.
const (
	descriptionKey = "description"
	keywordsKey    = "keywords"
)

// Generated holds the description and keywords produced by the completion
// client. It is transient: created per invocation and never persisted except
// by being merged into front matter.
type Generated struct {
	Description string
	Keywords    []string
}

// Outcome reports what Merge did.
type Outcome int

const (
	// Updated means the generated metadata was folded into the front matter.
	Updated Outcome = iota

	// Skipped means head metadata already existed and override was false;
	// the front matter is unchanged. This is a user-visible no-op, not an
	// error.
	Skipped
)

// String returns the outcome name for logging.
func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// HasHead reports whether the front matter already contains a head entry.
// A nil matter has no head.
func HasHead(matter *yaml.Node) bool {
	if matter == nil || matter.Kind != yaml.MappingNode {
		return false
	}
	return findKey(matter, HeadKey) >= 0
}

// Merge folds gen into matter and reports the outcome.
//
// Merge is pure: it operates on a deep clone and never mutates its input.
// A nil matter is treated as an empty mapping. If head is absent it is
// inserted. If head is present and override is false the clone is returned
// unchanged with Skipped. If override is true only the description and
// keywords fields inside head are replaced; sibling fields keep their values
// and position.
func Merge(matter *yaml.Node, gen Generated, override bool) (*yaml.Node, Outcome) {
	var merged *yaml.Node
	if matter == nil {
		merged = emptyMapping()
	} else {
		merged = cloneNode(matter)
	}

	idx := findKey(merged, HeadKey)
	if idx < 0 {
		appendKey(merged, HeadKey, buildHead(gen))
		return merged, Updated
	}

	if !override {
		return merged, Skipped
	}

	head := merged.Content[idx+1]
	if head.Kind != yaml.MappingNode {
		// Whatever was under head, an override replaces it wholesale.
		merged.Content[idx+1] = buildHead(gen)
		return merged, Updated
	}

	setKey(head, descriptionKey, scalar(gen.Description))
	setKey(head, keywordsKey, sequence(gen.Keywords))
	return merged, Updated
}

// buildHead constructs the head mapping for gen.
func buildHead(gen Generated) *yaml.Node {
	head := emptyMapping()
	appendKey(head, descriptionKey, scalar(gen.Description))
	appendKey(head, keywordsKey, sequence(gen.Keywords))
	return head
}

// findKey returns the index of the key node for key within a mapping node,
// or -1. Mapping node content alternates key, value, key, value.
func findKey(mapping *yaml.Node, key string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// setKey replaces the value for key in mapping, appending the pair when the
// key is absent. Existing keys keep their position.
func setKey(mapping *yaml.Node, key string, value *yaml.Node) {
	if idx := findKey(mapping, key); idx >= 0 {
		mapping.Content[idx+1] = value
		return
	}
	appendKey(mapping, key, value)
}

func appendKey(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, scalar(key), value)
}

func emptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func sequence(values []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, scalar(v))
	}
	return seq
}

// cloneNode deep-copies a yaml node tree. Alias targets are shared, which is
// safe because Merge never mutates existing values in place.
func cloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	out := *n
	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			out.Content[i] = cloneNode(child)
		}
	}
	return &out
}
