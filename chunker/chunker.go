// Package chunker splits release announcement text into transport-safe
// Discord messages under the 2000 character message cap.
package chunker

import "strings"

const (
	// maxMessageLength is Discord's hard cap on message content
	maxMessageLength = 2000
	// fenceWrapperOverhead is the cost of the code fence wrapped around
	// every body chunk
	fenceWrapperOverhead = len("```\n\n```")
	// maxChunkLength is the usable body budget per chunk after wrapping
	maxChunkLength = maxMessageLength - fenceWrapperOverhead
)

// SplitAnnouncement produces the ordered message sequence for a release
// announcement: one plain header message (role mention + title, not length
// enforced - titles are short), followed by zero or more body chunks each
// wrapped in a fenced code block.
//
// Body lines are accumulated greedily; a chunk is flushed when it cannot
// accept the next line. A single line longer than the budget is still
// appended alone to an empty buffer and emitted oversized rather than being
// split mid-line.
func SplitAnnouncement(roleMention, title, body string) []string {
	messages := []string{roleMention + " " + title}
	if body == "" {
		return messages
	}

	buffer := ""
	for _, line := range strings.Split(body, "\n") {
		if buffer != "" && len(buffer)+len(line) >= maxChunkLength {
			messages = append(messages, wrapChunk(buffer))
			buffer = ""
		}
		buffer += line + "\n"
	}
	messages = append(messages, wrapChunk(buffer))

	return messages
}

func wrapChunk(content string) string {
	return "```\n" + strings.TrimRight(content, " \t\n") + "\n```"
}
