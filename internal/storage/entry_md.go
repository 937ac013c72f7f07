// ABOUTME: Markdown-based diary storage with one file per day.
// ABOUTME: Stores entries as markdown files with YAML frontmatter in per-year directories.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/2389-research/minidiary/internal/fsutil"
	"github.com/2389-research/minidiary/internal/models"
)

// MDStore stores diary entries as <root>/YYYY/YYYY-MM-DD.md.
type MDStore struct {
	root string
}

// entryFrontmatter is the YAML frontmatter for entry files.
type entryFrontmatter struct {
	ID      string `yaml:"id"`
	Date    string `yaml:"date"`
	Title   string `yaml:"title,omitempty"`
	Updated string `yaml:"updated"`
}

// NewMDStore creates an entry store rooted at the diary directory.
func NewMDStore(root string) (*MDStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("diary directory is required")
	}
	return &MDStore{root: root}, nil
}

// Root returns the diary directory.
func (s *MDStore) Root() string {
	return s.root
}

func (s *MDStore) entryPath(date string) string {
	return filepath.Join(s.root, date[:4], date+".md")
}

// WriteEntry persists the entry for its day, replacing any previous content.
func (s *MDStore) WriteEntry(entry *models.Entry) error {
	if _, err := models.ParseIndexDate(entry.Date); err != nil {
		return err
	}

	if entry.IsEmpty() {
		if err := s.DeleteEntry(entry.Date); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		entry.FilePath = ""
		return nil
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.UpdatedAt = time.Now()

	fm := entryFrontmatter{
		ID:      entry.ID.String(),
		Date:    entry.Date,
		Title:   entry.Title,
		Updated: entry.UpdatedAt.UTC().Format(time.RFC3339),
	}

	content, err := renderFrontmatter(fm, entry.Text)
	if err != nil {
		return fmt.Errorf("failed to render frontmatter: %w", err)
	}

	path := s.entryPath(entry.Date)
	if err := fsutil.AtomicWrite(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}

	entry.FilePath = path
	return nil
}

// ReadEntry reads the entry for the given index date.
func (s *MDStore) ReadEntry(date string) (*models.Entry, error) {
	if _, err := models.ParseIndexDate(date); err != nil {
		return nil, err
	}

	path := s.entryPath(date)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, date)
		}
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}

	return parseEntry(path, string(data))
}

// DeleteEntry removes the entry file for the given index date.
func (s *MDStore) DeleteEntry(date string) error {
	if _, err := models.ParseIndexDate(date); err != nil {
		return err
	}

	if err := os.Remove(s.entryPath(date)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, date)
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// Entries scans the diary directory. Files that are not valid entries, or
// whose frontmatter date disagrees with the file name, are skipped.
func (s *MDStore) Entries() (models.Entries, error) {
	entries := make(models.Entries)

	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		return entries, nil
	}

	yearDirs, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list diary directory: %w", err)
	}

	for _, yearDir := range yearDirs {
		if !yearDir.IsDir() || len(yearDir.Name()) != 4 {
			continue
		}

		dirPath := filepath.Join(s.root, yearDir.Name())
		files, err := os.ReadDir(dirPath)
		if err != nil {
			continue
		}

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
				continue
			}

			filePath := filepath.Join(dirPath, file.Name())
			data, err := os.ReadFile(filePath)
			if err != nil {
				continue
			}

			entry, err := parseEntry(filePath, string(data))
			if err != nil {
				continue
			}
			if entry.Date+".md" != file.Name() {
				continue
			}

			entries[entry.Date] = *entry
		}
	}

	return entries, nil
}

// Close releases any resources held by the store.
func (s *MDStore) Close() error {
	return nil
}

// parseEntry parses a markdown file into an Entry.
func parseEntry(path string, content string) (*models.Entry, error) {
	yamlStr, body, err := parseFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var fm entryFrontmatter
	if err := yaml.Unmarshal([]byte(yamlStr), &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in frontmatter: %w", err)
	}

	if _, err := models.ParseIndexDate(fm.Date); err != nil {
		return nil, fmt.Errorf("invalid date in frontmatter: %w", err)
	}

	var updated time.Time
	if fm.Updated != "" {
		updated, err = time.Parse(time.RFC3339, fm.Updated)
		if err != nil {
			return nil, fmt.Errorf("invalid updated time in frontmatter: %w", err)
		}
	}

	return &models.Entry{
		ID:        id,
		Date:      fm.Date,
		Title:     fm.Title,
		Text:      body,
		UpdatedAt: updated,
		FilePath:  path,
	}, nil
}
