package repository

import (
	"context"
	"errors"
	"time"

	"floorplanner/internal/editor/document"
)

var ErrNotFound = errors.New("plan not found")

// ============================================================
// Plan Store
// ============================================================

// Plan: сохранённый документ плана.
type Plan struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Document  document.Document `json:"document"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// PlanInfo is a plan without its document, for listings.
type PlanInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists plan documents. The returned plan id is the opaque
// reference clients use for later loads.
type Store interface {
	Create(ctx context.Context, name string, doc document.Document) (*Plan, error)
	Update(ctx context.Context, id, name string, doc document.Document) (*Plan, error)
	Get(ctx context.Context, id string) (*Plan, error)
	// List returns plans newest first.
	List(ctx context.Context) ([]PlanInfo, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
