// Package format serializes retrieved passages for insertion into a prompt.
package format

import (
	"strings"

	"ai-ragchat-be/pkg/rag"
)

const (
	DocOpen  = "<doc>"
	DocClose = "</doc>"
)

// Documents wraps each passage in a <doc> envelope and joins them with a
// newline, keeping the retriever's order. Passage text is not escaped, so a
// passage containing a literal </doc> can blur boundaries for the model.
func Documents(passages []rag.Passage) string {
	if len(passages) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(DocOpen)
		b.WriteString("\n")
		b.WriteString(p.Text)
		b.WriteString("\n")
		b.WriteString(DocClose)
	}
	return b.String()
}
