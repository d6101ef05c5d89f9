// ABOUTME: Citation assembly from retrieved chunks
// ABOUTME: 1:1 order-preserving mapping with bounded content previews
package core

import "github.com/harper/textbook-tutor/internal/models"

// citationPreviewLength bounds the preview text carried in a citation.
const citationPreviewLength = 100

// sectionPlaceholder is used until finer-grained location metadata exists.
// TODO: derive the section label from markdown headings once chunk payloads
// carry heading positions.
const sectionPlaceholder = "Relevant Section"

// ToCitations maps retrieved chunks to citation records, preserving order.
func ToCitations(chunks []models.RetrievedChunk) []models.Citation {
	citations := make([]models.Citation, 0, len(chunks))
	for _, chunk := range chunks {
		citations = append(citations, models.Citation{
			ChapterID:      chunk.ChapterID,
			ChapterTitle:   chunk.Title,
			Section:        sectionPlaceholder,
			ContentPreview: truncateText(chunk.Text, citationPreviewLength),
		})
	}
	return citations
}
