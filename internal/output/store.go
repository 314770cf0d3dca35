package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"

	"webnovel-scraper/internal/formatter"
)

// MaxNameLength bounds file and directory names derived from titles.
const MaxNameLength = 120

var (
	invalidNameChars = strings.NewReplacer(
		"<", "_", ">", "_", ":", "_", `"`, "_", "/", "_",
		`\`, "_", "|", "_", "?", "_", "*", "_",
	)
	whitespaceRun = regexp.MustCompile(`\s+`)
	chapterFile   = regexp.MustCompile(`^(\d{3,}) (.*)\.txt$`)
)

// SafeName turns a title into a portable file name: reserved characters
// become "_", whitespace runs collapse to one space and the result is cut to
// maxLen runes. An empty result becomes "chapter".
func SafeName(name string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = MaxNameLength
	}
	name = norm.NFC.String(formatter.RemoveControlCharacters(name))
	name = invalidNameChars.Replace(name)
	name = strings.TrimSpace(whitespaceRun.ReplaceAllString(name, " "))

	if runes := []rune(name); len(runes) > maxLen {
		name = strings.TrimRightFunc(string(runes[:maxLen]), unicode.IsSpace)
	}
	if name == "" {
		return "chapter"
	}
	return name
}

// ChapterStore keeps one directory per book under Root, with one
// "NNN <title>.txt" file per chapter.
type ChapterStore struct {
	Root string
}

// NewChapterStore returns a store rooted at dir.
func NewChapterStore(dir string) *ChapterStore {
	return &ChapterStore{Root: dir}
}

// BookDir returns the directory holding book's chapters.
func (s *ChapterStore) BookDir(book string) string {
	return filepath.Join(s.Root, SafeName(book, MaxNameLength))
}

// SaveChapter writes a chapter as its title, a blank line and the body.
// Any earlier file for the same index is replaced, even under another title.
func (s *ChapterStore) SaveChapter(book string, index int, title, body string) (string, error) {
	dir := s.BookDir(book)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create book directory: %w", err)
	}

	for _, old := range s.indexFiles(dir, index) {
		if err := os.Remove(old); err != nil {
			return "", fmt.Errorf("failed to replace chapter %d: %w", index, err)
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("%03d %s.txt", index, SafeName(title, MaxNameLength)))
	content := title + "\n\n" + body + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write chapter %d: %w", index, err)
	}

	log.Debug().Str("path", path).Int("index", index).Msg("chapter saved")
	return path, nil
}

// Exists reports whether a chapter with this index is already stored.
func (s *ChapterStore) Exists(book string, index int) bool {
	return len(s.indexFiles(s.BookDir(book), index)) > 0
}

func (s *ChapterStore) indexFiles(dir string, index int) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	prefix := fmt.Sprintf("%03d ", index)
	var files []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".txt") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files
}

// Books lists the stored book directories in name order.
func (s *ChapterStore) Books() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	var books []string
	for _, e := range entries {
		if e.IsDir() {
			books = append(books, e.Name())
		}
	}
	return books, nil
}

// LoadBook reads a stored book back with its chapters in index order.
// Files that do not follow the chapter naming scheme are ignored.
func (s *ChapterStore) LoadBook(book string) (*Book, error) {
	dir := s.BookDir(book)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read book %q: %w", book, err)
	}

	b := NewBook(book, "")
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := chapterFile.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read chapter %s: %w", e.Name(), err)
		}
		title, body := splitChapterFile(string(data))
		if title == "" {
			title = m[2]
		}
		b.AddChapter(index, title, body)
	}

	if len(b.Chapters) == 0 {
		return nil, fmt.Errorf("no chapters stored for book %q", book)
	}
	return b, nil
}

func splitChapterFile(content string) (string, string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	title, body, _ := strings.Cut(content, "\n")
	return strings.TrimSpace(title), strings.TrimSpace(body)
}
