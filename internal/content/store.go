// ABOUTME: Content store interface and errors for textbook chapter access
// ABOUTME: The engine consumes this; chapters are immutable within a process lifetime
package content

import (
	"errors"

	"github.com/harper/textbook-tutor/internal/models"
)

// ErrChapterNotFound is returned when a chapter id is unknown to the store.
var ErrChapterNotFound = errors.New("chapter not found")

// Store provides read access to the textbook corpus.
type Store interface {
	// ListChapters returns all chapters ordered by chapter number.
	ListChapters() ([]models.Chapter, error)

	// GetChapter returns the chapter with the given id, or ErrChapterNotFound.
	GetChapter(chapterID string) (*models.Chapter, error)
}
