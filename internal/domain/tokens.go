package domain

import "unicode/utf8"

const estimateCharsPerToken = 4

// EstimateTokens approximates a token count from text length when no vendor
// accounting is available. Roughly four characters per token; deterministic
// for a given input. Results carry Usage.Estimated so reporting can tell
// approximations apart from real vendor counts.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	n := utf8.RuneCountInString(text)
	tokens := n / estimateCharsPerToken
	if n%estimateCharsPerToken != 0 {
		tokens++
	}
	return tokens
}

// EstimatePromptTokens approximates the token count of an entire message
// sequence, document context included.
func EstimatePromptTokens(messages []Message) int {
	total := 0
	for _, msg := range messages {
		total += EstimateTokens(msg.Content)
	}
	return total
}
