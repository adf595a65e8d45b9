// Package frontmatter provides parsing and rendering of YAML front matter
// in markdown documents used by the mdmeta CLI.
//
// Front matter is delimited by lines containing only "---" at the start and
// end of the block. The content between delimiters is decoded into a
// yaml.Node mapping rather than a map, so key order, nesting, and scalar
// styles are preserved across a parse/render round trip. The remaining
// content after the closing delimiter is the body and passes through
// unchanged.
//
// # Basic Usage
//
//	doc, err := frontmatter.Parse(raw)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if doc.Matter == nil {
//		// document has no front matter; doc.Body == string(raw)
//	}
//	out, err := doc.Render()
//
// # Error Handling
//
// A document with no opening fence is not an error: Parse returns a
// Document with a nil Matter. An opening fence without a closing fence, or
// a block that is not a YAML mapping, fails with
// [errors.ErrMalformedFrontMatter], checked via [errors.Is].
//
// # Round Trip
//
// For any document produced by Render, Parse followed by Render reproduces
// the input byte for byte. For arbitrary input the YAML block is
// canonicalized to 2-space indent and the closing fence line always ends
// with exactly one newline; the body is never touched.
package frontmatter
