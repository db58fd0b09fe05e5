package rag

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookrag/internal/config"
	"bookrag/internal/domain/commonModels"
	"bookrag/internal/metrics"
	"bookrag/internal/rag/extract"
	"bookrag/internal/rag/indexer"
)

// ErrAnalysisUnavailable is returned when metadata analysis is requested
// while generation is disabled. There is no deterministic fallback for it.
var ErrAnalysisUnavailable = errors.New("metadata analysis requires generation")

// AnalyzeDocument reads a bounded preview of a document, the first pages of a
// paginated format capped at a character budget, and asks the generation
// model for title, author and category.
func (s *service) AnalyzeDocument(ctx context.Context, path string) (*commonModels.BookMetadata, error) {
	if s.generationDisabled {
		return nil, ErrAnalysisUnavailable
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("metadata_analysis", time.Since(start)) }()

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	preview, err := extract.Text(path, extract.Options{
		MaxPages: config.MetadataPageCap,
		MaxChars: config.PreviewCharBudget,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(preview) == "" {
		return nil, indexer.ErrEmptyContent
	}

	answer, err := s.executeLLMStep(processContext, buildAnalysisPrompt(preview))
	if err != nil {
		s.logger.Error("metadata analysis failed", "path", path, "error", err)
		return nil, err
	}
	return parseAnalysisAnswer(answer), nil
}

func buildAnalysisPrompt(preview string) string {
	var sb strings.Builder
	sb.WriteString("Analiza el siguiente fragmento inicial de un libro e identifica sus metadatos.\n")
	sb.WriteString("Responde exactamente en tres líneas, sin texto adicional:\n")
	sb.WriteString("Título: <título del libro>\n")
	sb.WriteString("Autor: <autor del libro>\n")
	sb.WriteString("Categoría: <categoría o género>\n")
	sb.WriteString("Si algún dato no aparece en el fragmento, escribe Desconocido.\n")
	sb.WriteString("\nFragmento:\n")
	sb.WriteString(preview)
	return sb.String()
}

// parseAnalysisAnswer scans the model output for the three labeled lines.
// "Desconocido" maps to an empty field so callers can tell missing data apart
// from a hallucinated value.
func parseAnalysisAnswer(answer string) *commonModels.BookMetadata {
	meta := &commonModels.BookMetadata{}
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Título:"):
			meta.Title = cleanAnalysisField(strings.TrimPrefix(line, "Título:"))
		case strings.HasPrefix(line, "Autor:"):
			meta.Author = cleanAnalysisField(strings.TrimPrefix(line, "Autor:"))
		case strings.HasPrefix(line, "Categoría:"):
			meta.Category = cleanAnalysisField(strings.TrimPrefix(line, "Categoría:"))
		}
	}
	return meta
}

func cleanAnalysisField(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "Desconocido") {
		return ""
	}
	return v
}
