// Package frontmatter provides parsing and rendering of YAML front matter
// in markdown documents.
package frontmatter

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mdmeta/internal/errors"
)

// fence is the delimiter line that opens and closes a front matter block.
const fence = "---"

// Document is a markdown document split into front matter and body.
type Document struct {
	// Matter is the front matter mapping, decoded as a yaml.Node so that
	// key order, nesting, and scalar styles survive a parse/render round
	// trip. Nil means the document has no front matter, which is a valid
	// state rather than an error.
	Matter *yaml.Node

	// Body is everything after the closing fence, verbatim. Opaque to this
	// package.
	Body string
}

// Parse splits raw document text into front matter and body.
//
// A document with no opening fence at position zero parses to a Document
// with a nil Matter and the full text as Body. An opening fence without a
// matching closing fence, or a block that does not decode to a YAML
// mapping, fails with errors.ErrMalformedFrontMatter.
func Parse(content []byte) (*Document, error) {
	if !hasOpeningFence(content) {
		return &Document{Body: string(content)}, nil
	}

	// Skip the opening fence line, tolerating CRLF.
	offset := len(fence)
	if offset < len(content) && content[offset] == '\r' {
		offset++
	}
	if offset < len(content) && content[offset] == '\n' {
		offset++
	}
	rest := content[offset:]

	var block, tail []byte
	if isFenceLine(rest) {
		// Closing fence immediately follows the opening one: empty block.
		tail = rest[len(fence):]
	} else {
		idx := findClosingFence(rest)
		if idx < 0 {
			return nil, errors.Wrap(errors.ErrMalformedFrontMatter, "opening fence has no closing fence")
		}
		block = rest[:idx]
		tail = rest[idx+1+len(fence):]
	}

	// Drop the newline that terminates the closing fence line; everything
	// after it belongs to the body verbatim.
	if len(tail) > 0 && tail[0] == '\r' {
		tail = tail[1:]
	}
	if len(tail) > 0 && tail[0] == '\n' {
		tail = tail[1:]
	}

	matter, err := decodeMatter(block)
	if err != nil {
		return nil, err
	}

	return &Document{Matter: matter, Body: string(tail)}, nil
}

// Render is the inverse of Parse for any document this tool writes.
//
// A nil Matter renders the body verbatim. Otherwise the output is the
// opening fence, the matter encoded with 2-space indent, the closing
// fence, then the body. The closing fence line is always terminated with
// exactly one newline; that is the only normalization applied.
func (d *Document) Render() ([]byte, error) {
	if d.Matter == nil {
		return []byte(d.Body), nil
	}

	var buf bytes.Buffer
	buf.WriteString(fence)
	buf.WriteByte('\n')

	if len(d.Matter.Content) > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d.Matter); err != nil {
			return nil, errors.Wrap(err, "encoding front matter")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encoding front matter")
		}
	}

	buf.WriteString(fence)
	buf.WriteByte('\n')
	buf.WriteString(d.Body)

	return buf.Bytes(), nil
}

func hasOpeningFence(content []byte) bool {
	return bytes.HasPrefix(content, []byte(fence+"\n")) ||
		bytes.HasPrefix(content, []byte(fence+"\r\n"))
}

// isFenceLine reports whether b starts with a fence that is a whole line
// (terminated by a newline or end of input).
func isFenceLine(b []byte) bool {
	if !bytes.HasPrefix(b, []byte(fence)) {
		return false
	}
	if len(b) == len(fence) {
		return true
	}
	return b[len(fence)] == '\n' || b[len(fence)] == '\r'
}

// findClosingFence returns the index of the newline that precedes the
// closing fence line, or -1 if no closing fence exists. A fence only
// counts when it occupies a whole line, so "----" or "--- inline" in the
// block do not terminate it.
func findClosingFence(b []byte) int {
	from := 0
	for {
		idx := bytes.Index(b[from:], []byte("\n"+fence))
		if idx < 0 {
			return -1
		}
		abs := from + idx
		if isFenceLine(b[abs+1:]) {
			return abs
		}
		from = abs + 1
	}
}

// decodeMatter decodes the text between the fences into a mapping node.
// An empty or whitespace-only block yields an empty mapping.
func decodeMatter(block []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(block)) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrMalformedFrontMatter, "decoding front matter: %v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.Wrap(errors.ErrMalformedFrontMatter, "empty YAML document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Wrap(errors.ErrMalformedFrontMatter, "front matter is not a key/value mapping")
	}

	return root, nil
}
