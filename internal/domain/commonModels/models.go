package commonModels

import "fmt"

// ChunkMetadata identifies a chunk inside its document. (documentID, chunkIndex)
// is unique within the index and survives restarts.
type ChunkMetadata struct {
	DocumentID string `json:"document_id"`
	ChunkIndex int    `json:"chunk_index"`
}

// EntryID is the deterministic index address of a chunk, used for idempotent
// upsert and delete.
func (m ChunkMetadata) EntryID() string {
	return fmt.Sprintf("%s_chunk_%d", m.DocumentID, m.ChunkIndex)
}

// ChunkEntry is one (vector, text, metadata) tuple going into the vector index.
type ChunkEntry struct {
	Metadata  ChunkMetadata
	Text      string
	Embedding []float32
}

// ChunkMatch is one retrieval hit, most similar first. Score is the backend's
// cosine similarity, higher is closer.
type ChunkMatch struct {
	Metadata ChunkMetadata
	Text     string
	Score    float32
}

// BookMetadata is the catalog's view of a document, passed through to prompt
// assembly. The catalog itself lives outside this service.
type BookMetadata struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Category string `json:"category,omitempty"`
}

// LibraryContext carries cross-document hints, e.g. other works by the same
// author, for the balanced/open query modes.
type LibraryContext struct {
	AuthorOtherBooks []string `json:"author_other_books,omitempty"`
}

// QueryMode controls how much the generation model may stray from the
// retrieved context.
type QueryMode string

const (
	ModeStrict   QueryMode = "strict"
	ModeBalanced QueryMode = "balanced"
	ModeOpen     QueryMode = "open"
)

// ParseQueryMode validates a caller-supplied mode string. Anything unknown,
// including the empty string, falls back to balanced.
func ParseQueryMode(s string) QueryMode {
	switch QueryMode(s) {
	case ModeStrict, ModeBalanced, ModeOpen:
		return QueryMode(s)
	default:
		return ModeBalanced
	}
}

type DocType string

var PDF DocType = "PDF"
var EPUB DocType = "EPUB"
var DOCX DocType = "DOCX"
var ERR DocType = "ERROR"
