package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrInvalidPlanID = errors.New("invalid plan id")

// ============================================================
// File Storage
// ============================================================

// FileStorage раскладывает экспорты сохранённых планов по каталогам.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) Root() string {
	return s.root
}

func (s *FileStorage) PlanDir(planID string) string {
	return filepath.Join(s.root, planID)
}

func (s *FileStorage) PNGPath(planID string) string {
	return filepath.Join(s.PlanDir(planID), "plan.png")
}

func (s *FileStorage) SVGPath(planID string) string {
	return filepath.Join(s.PlanDir(planID), "plan.svg")
}

func (s *FileStorage) JSONPath(planID string) string {
	return filepath.Join(s.PlanDir(planID), "plan.json")
}

func (s *FileStorage) EnsureDir(planID string) error {
	if err := ValidateID(planID); err != nil {
		return err
	}
	path := s.PlanDir(planID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir plan dir: %w", err)
	}
	return nil
}

func (s *FileStorage) SaveFile(planID, target string, data []byte) error {
	if err := s.EnsureDir(planID); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

// Exports записывает все три представления плана.
type Exports struct {
	PNG  []byte
	SVG  string
	JSON []byte
}

func (s *FileStorage) SaveExports(planID string, ex Exports) error {
	files := []struct {
		path string
		data []byte
	}{
		{s.PNGPath(planID), ex.PNG},
		{s.SVGPath(planID), []byte(ex.SVG)},
		{s.JSONPath(planID), ex.JSON},
	}
	for _, f := range files {
		if len(f.data) == 0 {
			continue
		}
		if err := s.SaveFile(planID, f.path, f.data); err != nil {
			return fmt.Errorf("save %s: %w", filepath.Base(f.path), err)
		}
	}
	return nil
}

// Remove удаляет каталог плана; отсутствие каталога не ошибка.
func (s *FileStorage) Remove(planID string) error {
	if err := ValidateID(planID); err != nil {
		return err
	}
	if err := os.RemoveAll(s.PlanDir(planID)); err != nil {
		return fmt.Errorf("remove plan dir: %w", err)
	}
	return nil
}

func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ValidateID принимает только uuid: иначе путь может выйти за root.
func ValidateID(planID string) error {
	if _, err := uuid.Parse(planID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPlanID, planID)
	}
	return nil
}
