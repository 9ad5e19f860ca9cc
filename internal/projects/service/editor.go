package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
	"github.com/kuhatje/Spur-AMP/internal/planner/mapper"
	"github.com/kuhatje/Spur-AMP/internal/planner/parser"
	"github.com/kuhatje/Spur-AMP/internal/projects/models"
)

// ErrForbidden is returned when a user touches a project they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrStoryLimit is returned when an edit would leave more stories than a
// project file may hold.
var ErrStoryLimit = errors.New("too many stories")

// Store is the persistence the editor needs.
type Store interface {
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id string) error
}

// Op is one Grid Model mutation.
type Op func(b *layout.Building) error

// ExportResult lists the artifacts an export produced.
type ExportResult struct {
	Files      []string `json:"files"`
	LayoutPath string   `json:"layoutPath,omitempty"`
}

// ============================================================
// Editor
// ============================================================

// Editor applies layout operations to stored projects. Every mutation runs
// load, apply, save under the project's lock; a failed operation saves
// nothing.
type Editor struct {
	store      Store
	locks      *ProjectLocks
	storage    *FileStorage
	exporter   *mapper.Exporter
	layoutPath string
}

// NewEditor wires the editor. layoutPath is where the Revit importer reads
// its payload; empty disables that copy.
func NewEditor(store Store, storage *FileStorage, exporter *mapper.Exporter, layoutPath string) *Editor {
	return &Editor{
		store:      store,
		locks:      NewProjectLocks(),
		storage:    storage,
		exporter:   exporter,
		layoutPath: layoutPath,
	}
}

// Create stores a new project owned by ownerID. Empty data starts from a
// single default story; otherwise data must be a valid project file.
func (e *Editor) Create(ctx context.Context, ownerID, name string, data []byte) (*models.Project, *layout.Building, error) {
	b := layout.New()
	if len(bytes.TrimSpace(data)) > 0 {
		var err error
		if b, err = parser.Decode(bytes.NewReader(data)); err != nil {
			return nil, nil, err
		}
	}

	encoded, err := encode(b)
	if err != nil {
		return nil, nil, err
	}
	p := &models.Project{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Name:    name,
		Data:    encoded,
	}
	if err := e.store.CreateProject(ctx, p); err != nil {
		return nil, nil, err
	}
	log.Printf("[PROJECTS] Created project %s (%q) for %s", p.ID, name, ownerID)
	return p, b, nil
}

// Load returns the project and its decoded building.
func (e *Editor) Load(ctx context.Context, userID, id string) (*models.Project, *layout.Building, error) {
	p, err := e.store.GetProject(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.OwnerID != userID {
		return nil, nil, fmt.Errorf("project %s: %w", id, ErrForbidden)
	}
	b, err := parser.Decode(bytes.NewReader(p.Data))
	if err != nil {
		return nil, nil, fmt.Errorf("stored project %s: %w", id, err)
	}
	return p, b, nil
}

// Apply runs op on the stored building and saves the result.
func (e *Editor) Apply(ctx context.Context, userID, id string, op Op) (*layout.Building, error) {
	unlock := e.locks.Lock(id)
	defer unlock()

	p, b, err := e.Load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := op(b); err != nil {
		return nil, err
	}
	if b.StoryCount() > parser.MaxFloors {
		return nil, fmt.Errorf("%w: %d > %d", ErrStoryLimit, b.StoryCount(), parser.MaxFloors)
	}
	if p.Data, err = encode(b); err != nil {
		return nil, err
	}
	if err := e.store.UpdateProject(ctx, p); err != nil {
		return nil, err
	}
	return b, nil
}

// Replace overwrites the project file and, when name is not empty, the name.
func (e *Editor) Replace(ctx context.Context, userID, id, name string, data []byte) (*models.Project, *layout.Building, error) {
	b, err := parser.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}

	unlock := e.locks.Lock(id)
	defer unlock()

	p, _, err := e.Load(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	if name != "" {
		p.Name = name
	}
	if p.Data, err = encode(b); err != nil {
		return nil, nil, err
	}
	if err := e.store.UpdateProject(ctx, p); err != nil {
		return nil, nil, err
	}
	return p, b, nil
}

// Delete removes the project and its exported artifacts.
func (e *Editor) Delete(ctx context.Context, userID, id string) error {
	unlock := e.locks.Lock(id)
	defer unlock()

	if _, _, err := e.Load(ctx, userID, id); err != nil {
		return err
	}
	if err := e.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	return e.storage.RemoveProject(id)
}

// Export writes every artifact of the project into its export directory and
// copies the Revit payload to the importer's path. The stored project is
// never modified.
func (e *Editor) Export(ctx context.Context, userID, id string) (*ExportResult, error) {
	unlock := e.locks.Lock(id)
	p, b, err := e.Load(ctx, userID, id)
	unlock()
	if err != nil {
		return nil, err
	}

	if err := e.storage.EnsureExportDir(id); err != nil {
		return nil, fmt.Errorf("%w: %v", mapper.ErrExportFailure, err)
	}
	files, exportErr := e.exporter.Export(b, e.storage.ExportDir(id), p.Name)
	res := &ExportResult{Files: files}

	src := filepath.Join(e.storage.ExportDir(id), mapper.RevitFile)
	if e.layoutPath != "" && slices.Contains(files, src) {
		if err := mapper.CopyFileAtomic(src, e.layoutPath); err != nil {
			exportErr = errors.Join(exportErr, err)
		} else {
			res.LayoutPath = e.layoutPath
		}
	}
	return res, exportErr
}

func encode(b *layout.Building) ([]byte, error) {
	var buf bytes.Buffer
	if err := parser.Encode(&buf, b); err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	return buf.Bytes(), nil
}
