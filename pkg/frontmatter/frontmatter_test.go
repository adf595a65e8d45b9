package frontmatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/mdmeta/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantMatter map[string]any
		wantBody   string
		wantNil    bool
		wantErr    error
	}{
		{
			name: "valid front matter",
			input: `---
title: Example
tags:
  - go
  - cli
---
Some body text.
`,
			wantMatter: map[string]any{
				"title": "Example",
				"tags":  []any{"go", "cli"},
			},
			wantBody: "Some body text.\n",
		},
		{
			name:     "no front matter",
			input:    "# Just a markdown file\n\nNo front matter here.\n",
			wantNil:  true,
			wantBody: "# Just a markdown file\n\nNo front matter here.\n",
		},
		{
			name:     "dashes not at position zero",
			input:    "\n---\ntitle: x\n---\nbody\n",
			wantNil:  true,
			wantBody: "\n---\ntitle: x\n---\nbody\n",
		},
		{
			name: "empty front matter block",
			input: `---
---
Body content here.
`,
			wantMatter: map[string]any{},
			wantBody:   "Body content here.\n",
		},
		{
			name: "nested mapping",
			input: `---
prev:
  text: Previous title
  link: /resources/previous
---
content
`,
			wantMatter: map[string]any{
				"prev": map[string]any{
					"text": "Previous title",
					"link": "/resources/previous",
				},
			},
			wantBody: "content\n",
		},
		{
			name:    "unclosed fence",
			input:   "---\ntitle: Example\nno closing fence anywhere\n",
			wantErr: errors.ErrMalformedFrontMatter,
		},
		{
			name:    "scalar instead of mapping",
			input:   "---\njust a string\n---\nbody\n",
			wantErr: errors.ErrMalformedFrontMatter,
		},
		{
			name:    "sequence instead of mapping",
			input:   "---\n- a\n- b\n---\nbody\n",
			wantErr: errors.ErrMalformedFrontMatter,
		},
		{
			name:    "invalid YAML",
			input:   "---\ntitle: [broken\n---\nbody\n",
			wantErr: errors.ErrMalformedFrontMatter,
		},
		{
			name:       "CRLF line endings",
			input:      "---\r\ntitle: Windows\r\n---\r\nBody with CRLF.\r\n",
			wantMatter: map[string]any{"title": "Windows"},
			wantBody:   "Body with CRLF.\r\n",
		},
		{
			name:       "closing fence at end of input",
			input:      "---\ntitle: minimal\n---",
			wantMatter: map[string]any{"title": "minimal"},
			wantBody:   "",
		},
		{
			name: "fence-like line inside block does not close it",
			input: `---
title: Example
separator: ---- not a fence
---
body
`,
			wantMatter: map[string]any{
				"title":     "Example",
				"separator": "---- not a fence",
			},
			wantBody: "body\n",
		},
		{
			name:       "body keeps leading blank line",
			input:      "---\ntitle: x\n---\n\nbody after blank\n",
			wantMatter: map[string]any{"title": "x"},
			wantBody:   "\nbody after blank\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v in chain, got %v", tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, doc.Body)

			if tt.wantNil {
				assert.Nil(t, doc.Matter)
				return
			}
			require.NotNil(t, doc.Matter)

			got := map[string]any{}
			if len(doc.Matter.Content) > 0 {
				require.NoError(t, doc.Matter.Decode(&got))
			}
			assert.Equal(t, tt.wantMatter, got)
		})
	}
}

func TestRender_NoMatterIsPassthrough(t *testing.T) {
	input := "# Title\n\nsome markdown\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := doc.Render()
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		"---\ntitle: Example\n---\nSome body text.\n",
		"---\ntitle: Example\nhead:\n  description: A short summary.\n  keywords:\n    - x\n    - y\n---\nSome body text.\n",
		"---\n---\nBody only.\n",
		"---\ntitle: quoted\nlink: \"/resources/previous\"\n---\n",
		"---\na: 1\nb: 2\nc: 3\n---\n\nbody with leading blank\n",
	}

	for _, in := range docs {
		doc, err := Parse([]byte(in))
		require.NoError(t, err, "input: %q", in)

		out, err := doc.Render()
		require.NoError(t, err)
		assert.Equal(t, in, string(out), "round trip should be byte-identical")
	}
}

func TestRoundTrip_PreservesKeyOrder(t *testing.T) {
	// Keys deliberately not alphabetical; a map-based decode would scramble them.
	input := "---\nzebra: 1\napple: 2\nmango: 3\n---\nbody\n"

	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := doc.Render()
	require.NoError(t, err)
	assert.Equal(t, input, string(out))

	zebraIdx := strings.Index(string(out), "zebra")
	appleIdx := strings.Index(string(out), "apple")
	assert.Less(t, zebraIdx, appleIdx, "declaration order must survive")
}

func TestRender_EmptyMatterEmitsBareFences(t *testing.T) {
	doc, err := Parse([]byte("---\n---\nbody\n"))
	require.NoError(t, err)

	out, err := doc.Render()
	require.NoError(t, err)
	assert.Equal(t, "---\n---\nbody\n", string(out))
}
