// ABOUTME: File-backed content store loading markdown chapters from a docs directory
// ABOUTME: Strips YAML frontmatter and derives stable chapter ids from the manifest
package content

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/harper/textbook-tutor/internal/models"
)

// ChapterFile names one markdown source file in the corpus manifest.
type ChapterFile struct {
	Filename string
	Number   int
	Title    string
}

// DefaultManifest lists the textbook chapters shipped with the frontend docs.
func DefaultManifest() []ChapterFile {
	return []ChapterFile{
		{"ch1-introduction-to-physical-ai.md", 1, "Introduction to Physical AI"},
		{"ch2-basics-of-humanoid-robotics.md", 2, "Basics of Humanoid Robotics"},
		{"ch3-ros-2-fundamentals.md", 3, "ROS 2 Fundamentals"},
		{"ch4-digital-twin-simulation.md", 4, "Digital Twin Simulation (Gazebo + Isaac)"},
		{"ch5-vision-language-action-systems.md", 5, "Vision-Language-Action Systems"},
		{"ch6-capstone-simple-ai-robot-pipeline.md", 6, "Capstone: Simple AI-Robot Pipeline"},
	}
}

// FileStore loads chapters from markdown files once and serves them read-only.
type FileStore struct {
	mu       sync.RWMutex
	dir      string
	manifest []ChapterFile
	chapters map[string]models.Chapter
}

// NewFileStore creates a FileStore and loads every manifest entry that exists
// under dir. Missing files are logged and skipped rather than failing the
// whole store.
func NewFileStore(dir string, manifest []ChapterFile) (*FileStore, error) {
	if len(manifest) == 0 {
		manifest = DefaultManifest()
	}

	fs := &FileStore{
		dir:      dir,
		manifest: manifest,
		chapters: make(map[string]models.Chapter),
	}

	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

// load reads all manifest files from disk. Called once at construction and
// again on Reload.
func (fs *FileStore) load() error {
	chapters := make(map[string]models.Chapter)

	for _, cf := range fs.manifest {
		path := filepath.Join(fs.dir, cf.Filename)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("content: skipping chapter file %s: %v", cf.Filename, err)
			continue
		}

		body := stripFrontmatter(string(data))
		id := ChapterID(cf.Number, cf.Title)

		chapters[id] = models.Chapter{
			ChapterID:     id,
			Title:         cf.Title,
			Content:       body,
			ChapterNumber: cf.Number,
			WordCount:     len(strings.Fields(body)),
		}
	}

	fs.mu.Lock()
	fs.chapters = chapters
	fs.mu.Unlock()
	return nil
}

// Reload re-reads every chapter file from disk.
func (fs *FileStore) Reload() error {
	return fs.load()
}

// ListChapters returns all loaded chapters ordered by chapter number.
func (fs *FileStore) ListChapters() ([]models.Chapter, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	chapters := make([]models.Chapter, 0, len(fs.chapters))
	for _, ch := range fs.chapters {
		chapters = append(chapters, ch)
	}
	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].ChapterNumber < chapters[j].ChapterNumber
	})
	return chapters, nil
}

// GetChapter returns a single chapter by id.
func (fs *FileStore) GetChapter(chapterID string) (*models.Chapter, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	ch, ok := fs.chapters[chapterID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChapterNotFound, chapterID)
	}
	return &ch, nil
}

// ChapterID derives the stable chapter id used throughout the index and
// citations, e.g. "ch3-ros-2-fundamentals".
func ChapterID(number int, title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, ":", "")
	slug = strings.ReplaceAll(slug, "(", "")
	slug = strings.ReplaceAll(slug, ")", "")
	slug = strings.ReplaceAll(slug, "+", "")
	slug = strings.Join(strings.Fields(slug), "-")
	return fmt.Sprintf("ch%d-%s", number, slug)
}

// stripFrontmatter removes a leading YAML frontmatter block delimited by
// "---" lines, returning the remaining body unchanged.
func stripFrontmatter(text string) string {
	lines := strings.Split(text, "\n")

	start, end := -1, -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			if start == -1 {
				start = i
			} else {
				end = i
				break
			}
		} else if start == -1 && strings.TrimSpace(line) != "" {
			// Content before any delimiter means there is no frontmatter
			return text
		}
	}

	if start == -1 || end == -1 {
		return text
	}
	return strings.Join(lines[end+1:], "\n")
}
