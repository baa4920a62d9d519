// Package llm holds shared plumbing for the LLM-backed pipeline stages:
// the Gemini generation client, response cleanup, and the retry envelope.
package llm

import "strings"

// ExtractJSON strips an optional Markdown code fence from an LLM response,
// returning the raw JSON payload. Accepted forms are the bare payload,
// a ```json ... ``` wrapper, or a plain ``` ... ``` wrapper. Anything
// outside the fence is discarded.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
	} else if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+len("```"):]
	} else {
		return s
	}

	if j := strings.Index(s, "```"); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}
