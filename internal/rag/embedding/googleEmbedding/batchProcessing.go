package googleEmbedding

import (
	"strings"

	"bookrag/pkg/logger_i"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// getContent maps non-blank texts to genai contents. The second return value
// maps content position back to the original slice position.
func getContent(texts []string) ([]*genai.Content, []int) {
	contentsToSend := make([]*genai.Content, 0, len(texts))
	index := make([]int, 0, len(texts))

	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: text}},
		})
		index = append(index, i)
	}
	return contentsToSend, index
}

func doRetry(err error, log *logger_i.Logger) bool {
	if s, ok := status.FromError(err); ok {
		if s.Code() == codes.ResourceExhausted {
			log.Error("Rate limit hit! ", "error", err)
			return true
		}
	}
	return false
}
