package llm

import (
	"regexp"
	"strings"
)

var (
	thinkBlocks = regexp.MustCompile(`(?s)<think>.*?</think>`)
	fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
)

// ExtractJSON recovers the JSON payload from raw model output. Model text
// is untrusted: reasoning models interleave <think> blocks, and several
// models wrap JSON in markdown fences even when told not to. Both wrappers
// are stripped before the caller attempts to parse.
func ExtractJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimSpace(thinkBlocks.ReplaceAllString(content, ""))

	if m := fencedBlock.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return content
}
