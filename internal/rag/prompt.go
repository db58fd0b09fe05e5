package rag

import (
	"strings"

	"bookrag/internal/domain/commonModels"
)

func normalizeMode(mode commonModels.QueryMode) commonModels.QueryMode {
	switch mode {
	case commonModels.ModeStrict, commonModels.ModeBalanced, commonModels.ModeOpen:
		return mode
	default:
		return commonModels.ModeBalanced
	}
}

func modeGuidance(mode commonModels.QueryMode) string {
	switch mode {
	case commonModels.ModeStrict:
		return "Responde utilizando únicamente la información del Contexto proporcionado. Si el Contexto no contiene la información necesaria para responder, dilo explícitamente."
	case commonModels.ModeOpen:
		return "Combina libremente la información del Contexto con tus conocimientos generales para responder a la pregunta, dando prioridad al Contexto cuando sea relevante."
	default:
		return "Prioriza la información del Contexto proporcionado para responder a la pregunta. Si la información en el Contexto no es suficiente, puedes complementar con tus conocimientos generales, indicando claramente qué partes no provienen del Contexto."
	}
}

// buildPrompt composes the single generation prompt: guidance, optional
// document metadata, optional library context, the retrieved context block
// and the question. Library context is never included in strict mode.
func buildPrompt(question string, mode commonModels.QueryMode, contextBlock string, metadata *commonModels.BookMetadata, library *commonModels.LibraryContext) string {
	var sb strings.Builder

	sb.WriteString("Eres un asistente útil que responde preguntas sobre libros.\n")
	sb.WriteString(modeGuidance(mode))
	sb.WriteString("\nResponde siempre en español.\n")

	if metadata != nil {
		sb.WriteString("\nLibro: ")
		sb.WriteString(metadata.Title)
		if metadata.Author != "" {
			sb.WriteString(" de ")
			sb.WriteString(metadata.Author)
		}
		if metadata.Category != "" {
			sb.WriteString(" (categoría: ")
			sb.WriteString(metadata.Category)
			sb.WriteString(")")
		}
		sb.WriteString("\n")
	}

	if library != nil && mode != commonModels.ModeStrict && len(library.AuthorOtherBooks) > 0 {
		sb.WriteString("Otras obras del mismo autor: ")
		sb.WriteString(strings.Join(library.AuthorOtherBooks, ", "))
		sb.WriteString("\n")
	}

	sb.WriteString("\nContexto:\n")
	sb.WriteString(contextBlock)
	sb.WriteString("\n\nPregunta: ")
	sb.WriteString(question)
	sb.WriteString("\nRespuesta:")

	return sb.String()
}
