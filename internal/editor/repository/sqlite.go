package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"floorplanner/internal/editor/document"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

//go:embed migrations/001_init_plans.sql
var initPlans string

// ============================================================
// SQLite Repository
// ============================================================

type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLite(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Init запускает миграции.
func (r *SQLiteStore) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, initPlans); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (r *SQLiteStore) Create(ctx context.Context, name string, doc document.Document) (*Plan, error) {
	doc.Name = name
	data, err := document.Marshal(doc)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	plan := &Plan{ID: uuid.NewString(), Name: name, Document: doc, CreatedAt: now, UpdatedAt: now}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO plans (id, name, document, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
    `, plan.ID, plan.Name, string(data), now.UnixNano(), now.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	return plan, nil
}

func (r *SQLiteStore) Update(ctx context.Context, id, name string, doc document.Document) (*Plan, error) {
	doc.Name = name
	data, err := document.Marshal(doc)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx, `
        UPDATE plans SET name = ?, document = ?, updated_at = ?
        WHERE id = ?
    `, name, string(data), now.UnixNano(), id)
	if err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *SQLiteStore) Get(ctx context.Context, id string) (*Plan, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, document, created_at, updated_at
        FROM plans
        WHERE id = ?
    `, id)

	var (
		p                Plan
		data             string
		created, updated int64
	)
	if err := row.Scan(&p.ID, &p.Name, &data, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc, err := document.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", id, err)
	}
	p.Document = doc
	p.CreatedAt = time.Unix(0, created).UTC()
	p.UpdatedAt = time.Unix(0, updated).UTC()
	return &p, nil
}

func (r *SQLiteStore) List(ctx context.Context) ([]PlanInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, created_at, updated_at
        FROM plans
        ORDER BY created_at DESC, rowid DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []PlanInfo{}
	for rows.Next() {
		var (
			p                PlanInfo
			created, updated int64
		)
		if err := rows.Scan(&p.ID, &p.Name, &created, &updated); err != nil {
			return nil, err
		}
		p.CreatedAt = time.Unix(0, created).UTC()
		p.UpdatedAt = time.Unix(0, updated).UTC()
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteStore) Close() error {
	return r.db.Close()
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
