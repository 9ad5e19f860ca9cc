package service

import (
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// Export Storage
// ============================================================

// FileStorage lays out export artifacts as <root>/<projectID>/export.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) ProjectDir(projectID string) string {
	return filepath.Join(s.root, projectID)
}

func (s *FileStorage) ExportDir(projectID string) string {
	return filepath.Join(s.ProjectDir(projectID), "export")
}

func (s *FileStorage) EnsureExportDir(projectID string) error {
	if err := os.MkdirAll(s.ExportDir(projectID), 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}
	return nil
}

// RemoveProject deletes every artifact stored for the project.
func (s *FileStorage) RemoveProject(projectID string) error {
	if err := os.RemoveAll(s.ProjectDir(projectID)); err != nil {
		return fmt.Errorf("remove project dir: %w", err)
	}
	return nil
}
