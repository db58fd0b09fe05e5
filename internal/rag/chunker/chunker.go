package chunker

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// The encoding is part of the index format: changing it moves every chunk
// boundary, so re-index everything if it ever has to change.
const encodingName = "cl100k_base"

var (
	once       sync.Once
	encoder    *tiktoken.Tiktoken
	encoderErr error
)

func getEncoder() (*tiktoken.Tiktoken, error) {
	once.Do(func() {
		encoder, encoderErr = tiktoken.GetEncoding(encodingName)
	})
	return encoder, encoderErr
}

// Split cuts text into chunks of at most maxTokens tokens each. The split is
// a greedy fixed window over the token stream: boundaries depend only on
// cumulative token count, never on sentence structure. Identical input gives
// identical output. Empty or whitespace-only text yields no chunks.
func Split(text string, maxTokens int) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	enc, err := getEncoder()
	if err != nil {
		return nil, err
	}

	tokens := enc.Encode(text, nil, nil)

	var chunks []string
	for start := 0; start < len(tokens); start += maxTokens {
		end := start + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, enc.Decode(tokens[start:end]))
	}
	return chunks, nil
}

// CountTokens reports how many tokens text encodes to, using the same
// encoding as Split so the estimator and the chunker always agree.
func CountTokens(text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	enc, err := getEncoder()
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}
