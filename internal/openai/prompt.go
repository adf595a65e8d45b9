package openai

import "fmt"

// systemPrompt frames the model as a copywriter, matching the tone the head
// metadata should carry.
const systemPrompt = "You are a helpful web copywriter"

// promptTemplate asks for an outcome-focused description of roughly 180
// characters plus keywords, returned as a JSON object so the response can be
// decoded mechanically.
const promptTemplate = `Content:
%s
--
You will write the content for the meta tags of this article. The
description should be approx. 180 characters long (2 to 3 sentences).
The description should be focused on the results a reader might expect
from reading this article, i.e. it's not a summary but an overview of the
key results a reader will obtain. Use a neutral tone.

Then write the keywords.

Respond with a JSON object of the form
{"description": "...", "keywords": ["...", "..."]}.`

func userPrompt(body string) string {
	return fmt.Sprintf(promptTemplate, body)
}
