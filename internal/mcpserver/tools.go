package mcpserver

import (
	"context"

	"bookrag/internal/adapter"
	"bookrag/internal/api"
	"bookrag/internal/domain/commonModels"
	"bookrag/internal/rag"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type AskBookInput struct {
	Query      string              `json:"query" jsonschema:"the question to ask about the book"`
	DocumentID string              `json:"document_id" jsonschema:"id of the indexed book to query"`
	Mode       string              `json:"mode,omitempty" jsonschema:"answer mode: strict, balanced or open (default balanced)"`
	Metadata   *api.BookMetadata   `json:"metadata,omitempty" jsonschema:"optional title/author/category of the book"`
	Library    *api.LibraryContext `json:"library,omitempty" jsonschema:"optional context about the rest of the library"`
}

type AskBookOutput struct {
	Answer string `json:"answer"`
	Mode   string `json:"mode"`
}

type SemanticSearchInput struct {
	Query string `json:"query" jsonschema:"free text to match against the whole library"`
}

type SemanticSearchOutput struct {
	DocumentIDs []string `json:"document_ids"`
	Count       int      `json:"count"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_book",
		Description: "Ask a question about the content of one indexed book",
	}, s.handleAskBook)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "semantic_search",
		Description: "Find the books most relevant to a query, ranked by similarity",
	}, s.handleSemanticSearch)
}

func (s *Server) handleAskBook(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskBookInput,
) (*mcp.CallToolResult, AskBookOutput, error) {
	mode := commonModels.ParseQueryMode(input.Mode)
	answer, err := s.ragService.Query(ctx, rag.QueryParams{
		Question:   input.Query,
		DocumentID: input.DocumentID,
		Mode:       mode,
		Metadata:   adapter.ToQueryMetadata(input.Metadata),
		Library:    adapter.ToLibraryContext(input.Library),
	})
	if err != nil {
		return nil, AskBookOutput{}, err
	}
	return nil, AskBookOutput{Answer: answer, Mode: string(mode)}, nil
}

func (s *Server) handleSemanticSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SemanticSearchInput,
) (*mcp.CallToolResult, SemanticSearchOutput, error) {
	ids, err := s.ragService.SemanticSearch(ctx, input.Query)
	if err != nil {
		return nil, SemanticSearchOutput{}, err
	}
	return nil, SemanticSearchOutput{DocumentIDs: ids, Count: len(ids)}, nil
}
