package domain

// MaxDocumentChars bounds how much attached-document text is forwarded to a
// provider. Truncation is silent and deterministic: the front of the text is
// kept, the tail dropped.
const MaxDocumentChars = 10000

// TruncateDocument returns at most MaxDocumentChars characters from the
// front of text. The cut is rune-aligned so a multi-byte character is never
// split.
func TruncateDocument(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxDocumentChars {
		return text
	}
	return string(runes[:MaxDocumentChars])
}

// WithDocument returns a copy of messages with the (truncated) document text
// appended to the content of the final user turn. The input slice is never
// mutated. A nil or empty document returns the messages unchanged.
//
// Adapters that forward full history call this before translating to vendor
// shapes; adapters with reduced-context strategies apply the same truncation
// to whatever subset they send.
func WithDocument(messages []Message, doc *Document) []Message {
	if doc == nil || doc.Text == "" || len(messages) == 0 {
		return messages
	}

	out := make([]Message, len(messages))
	copy(out, messages)

	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Role == RoleUser {
			out[i].Content += "\n\n--- attached document: " + doc.Name + " ---\n" + TruncateDocument(doc.Text)
			break
		}
	}

	return out
}
