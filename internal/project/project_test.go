package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := NewArchive(filepath.Join(t.TempDir(), "novels"))
	if err != nil {
		t.Fatalf("NewArchive: %v", err)
	}
	return a
}

func TestCreateLayout(t *testing.T) {
	a := newArchive(t)

	p, err := a.Create("Mother of Learning")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, dir := range []string{p.OriginalDir(), p.TranslatedDir()} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("missing directory %s", dir)
		}
	}
	if _, err := os.Stat(filepath.Join(p.Path, "project.json")); err != nil {
		t.Errorf("project.json not written: %v", err)
	}
	if p.Status != StatusActive || p.Completed || p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Errorf("project = %+v", p)
	}

	if _, err := a.Create("Mother of Learning"); !errors.Is(err, ErrProjectExists) {
		t.Errorf("second Create err = %v", err)
	}
	if _, err := a.Create("  "); err == nil {
		t.Error("blank name accepted")
	}
}

func TestOpenRoundTrip(t *testing.T) {
	a := newArchive(t)
	created, err := a.Create("Book: One?")
	if err != nil {
		t.Fatal(err)
	}
	created.SourceURL = "https://www.royalroad.com/fiction/1/x"
	if err := created.Save(); err != nil {
		t.Fatal(err)
	}

	p, err := a.Open("Book: One?")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Name != "Book: One?" || p.SourceURL != created.SourceURL || filepath.Base(p.Path) != "Book_ One_" {
		t.Errorf("opened %+v", p)
	}

	if _, err := a.Open("missing"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Open(missing) err = %v", err)
	}
}

func TestOpenOrCreate(t *testing.T) {
	a := newArchive(t)
	first, err := a.OpenOrCreate("Fresh")
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.OpenOrCreate("Fresh")
	if err != nil {
		t.Fatal(err)
	}
	if !first.CreatedAt.Equal(second.CreatedAt) {
		t.Error("OpenOrCreate recreated an existing project")
	}
}

func TestListAndComplete(t *testing.T) {
	a := newArchive(t)
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := a.Create(name); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(a.Workdir, "stray"), 0755); err != nil {
		t.Fatal(err)
	}

	mid, _ := a.Open("Mid")
	if err := a.MarkCompleted(mid); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	active, err := a.List(StatusActive)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 || active[0].Name != "Alpha" || active[1].Name != "Zeta" {
		t.Errorf("active = %v", names(active))
	}

	done, err := a.List(StatusCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if len(done) != 1 || !done[0].Completed {
		t.Errorf("completed = %+v", done)
	}
}

func TestDelete(t *testing.T) {
	a := newArchive(t)
	p, err := a.Create("Gone")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Chapters().SaveChapter("Book", 1, "One", "text"); err != nil {
		t.Fatal(err)
	}

	if err := a.Delete(p); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(p.Path); !os.IsNotExist(err) {
		t.Errorf("project dir still present: %v", err)
	}

	outside := &Project{Path: t.TempDir()}
	if err := a.Delete(outside); err == nil {
		t.Error("deleted a directory outside the workdir")
	}
}

func names(ps []*Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
