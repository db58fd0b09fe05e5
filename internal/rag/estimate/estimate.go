package estimate

import (
	"strings"

	"bookrag/internal/config"
	"bookrag/internal/rag/chunker"
	"bookrag/internal/rag/extract"
	"bookrag/pkg/logger_i"
)

var logger = logger_i.NewLogger("Estimate")

// FileEstimate is the projected embedding work for one file. Chunks matches
// what the chunker would actually produce for the same token budget.
type FileEstimate struct {
	Tokens int
	Chunks int
}

// BatchEstimate aggregates estimates over a set of files. FilesProcessed
// counts the files that yielded text, unreadable or empty files are skipped
// without failing the batch.
type BatchEstimate struct {
	Tokens         int
	Chunks         int
	FilesProcessed int
}

// ForFile tokenizes a file without embedding or storing anything. A
// non-positive maxTokens falls back to the configured chunk budget.
func ForFile(path string, maxTokens int) (FileEstimate, error) {
	if maxTokens <= 0 {
		maxTokens = config.MaxChunkTokens()
	}

	text, err := extract.Text(path, extract.Options{})
	if err != nil {
		return FileEstimate{}, err
	}
	if strings.TrimSpace(text) == "" {
		return FileEstimate{}, nil
	}

	tokens, err := chunker.CountTokens(text)
	if err != nil {
		return FileEstimate{}, err
	}
	return FileEstimate{
		Tokens: tokens,
		Chunks: (tokens + maxTokens - 1) / maxTokens,
	}, nil
}

// ForFiles sums per-file estimates. A file that cannot be read only lowers
// FilesProcessed, the rest of the batch still counts.
func ForFiles(paths []string, maxTokens int) BatchEstimate {
	var batch BatchEstimate
	for _, path := range paths {
		est, err := ForFile(path, maxTokens)
		if err != nil {
			logger.Warn("skipping file in estimate", "path", path, "error", err)
			continue
		}
		batch.Tokens += est.Tokens
		batch.Chunks += est.Chunks
		batch.FilesProcessed++
	}
	return batch
}

// Cost converts a token count to a price given a per-1000-token rate.
func Cost(tokens int, per1k float64) float64 {
	return float64(tokens) / 1000.0 * per1k
}
