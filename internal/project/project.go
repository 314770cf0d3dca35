// Package project manages on-disk projects: one directory per project
// holding project.json plus the Original and Translated chapter folders.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"webnovel-scraper/internal/output"
)

const (
	metadataFile  = "project.json"
	originalDir   = "Original"
	translatedDir = "Translated"
)

var (
	ErrProjectExists   = errors.New("project already exists")
	ErrProjectNotFound = errors.New("project not found")
)

// Status is a project's lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Project is a single project stored on disk.
type Project struct {
	Path      string    `json:"-"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Completed bool      `json:"completed"`
	SourceURL string    `json:"source_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OriginalDir holds downloaded chapters, one sub-directory per book.
func (p *Project) OriginalDir() string {
	return filepath.Join(p.Path, originalDir)
}

// TranslatedDir is reserved for translated chapters.
func (p *Project) TranslatedDir() string {
	return filepath.Join(p.Path, translatedDir)
}

// Chapters returns a chapter store over the project's Original folder.
func (p *Project) Chapters() *output.ChapterStore {
	return output.NewChapterStore(p.OriginalDir())
}

// Save writes project.json, creating the project folders if needed.
func (p *Project) Save() error {
	p.Completed = p.Status == StatusCompleted
	for _, dir := range []string{p.Path, p.OriginalDir(), p.TranslatedDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	p.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(filepath.Join(p.Path, metadataFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads the project stored in dir.
func Load(dir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, dir)
		}
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	p := &Project{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Join(dir, metadataFile), err)
	}
	p.Path = dir
	if p.Name == "" {
		p.Name = filepath.Base(dir)
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	return p, nil
}

// Archive manages the projects stored under one work directory.
type Archive struct {
	Workdir string
}

// NewArchive opens the archive at workdir, creating the directory.
func NewArchive(workdir string) (*Archive, error) {
	if err := os.MkdirAll(workdir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workdir: %w", err)
	}
	return &Archive{Workdir: workdir}, nil
}

func (a *Archive) dir(name string) string {
	return filepath.Join(a.Workdir, output.SafeName(name, output.MaxNameLength))
}

// Create starts a new active project called name.
func (a *Archive) Create(name string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("project name is required")
	}
	dir := a.dir(name)
	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, name)
	}

	now := time.Now().UTC()
	p := &Project{
		Path:      dir,
		Name:      strings.TrimSpace(name),
		Status:    StatusActive,
		CreatedAt: now,
	}
	if err := p.Save(); err != nil {
		return nil, err
	}
	log.Debug().Str("project", p.Name).Str("path", dir).Msg("project created")
	return p, nil
}

// Open loads the project called name.
func (a *Archive) Open(name string) (*Project, error) {
	return Load(a.dir(name))
}

// OpenOrCreate loads the project called name, creating it when missing.
func (a *Archive) OpenOrCreate(name string) (*Project, error) {
	p, err := a.Open(name)
	if errors.Is(err, ErrProjectNotFound) {
		return a.Create(name)
	}
	return p, err
}

// List returns the projects with the given status, sorted by name.
// Directories without a readable project.json are skipped.
func (a *Archive) List(status Status) ([]*Project, error) {
	entries, err := os.ReadDir(a.Workdir)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var projects []*Project
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p, err := Load(filepath.Join(a.Workdir, e.Name()))
		if err != nil {
			if !errors.Is(err, ErrProjectNotFound) {
				log.Warn().Err(err).Str("dir", e.Name()).Msg("skipping unreadable project")
			}
			continue
		}
		if p.Status == status {
			projects = append(projects, p)
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}

// MarkCompleted moves p to the completed list.
func (a *Archive) MarkCompleted(p *Project) error {
	p.Status = StatusCompleted
	return p.Save()
}

// Delete removes p and everything stored in it. Only directories directly
// under the archive's workdir that hold a project.json are removed.
func (a *Archive) Delete(p *Project) error {
	if filepath.Clean(filepath.Dir(p.Path)) != filepath.Clean(a.Workdir) {
		return fmt.Errorf("refusing to delete %s: not inside %s", p.Path, a.Workdir)
	}
	if _, err := os.Stat(filepath.Join(p.Path, metadataFile)); err != nil {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, p.Path)
	}
	if err := os.RemoveAll(p.Path); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
