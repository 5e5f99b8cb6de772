package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"floorplanner/internal/editor/document"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ============================================================
// PostgreSQL Repository
// ============================================================

type planRecord struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Document  string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (planRecord) TableName() string {
	return "plans"
}

// BeforeCreate hook to generate ID if not set
func (p *planRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type PostgresStore struct {
	db *gorm.DB
}

// NewPostgres подключается к PostgreSQL через gorm.
func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Migrate создаёт таблицу планов.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&planRecord{})
}

func (s *PostgresStore) Create(ctx context.Context, name string, doc document.Document) (*Plan, error) {
	rec, err := newRecord(name, doc)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}
	return rec.plan()
}

func (s *PostgresStore) Update(ctx context.Context, id, name string, doc document.Document) (*Plan, error) {
	rec, err := newRecord(name, doc)
	if err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&planRecord{}).Where("id = ?", id).
		Updates(map[string]any{"name": rec.Name, "document": rec.Document, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, fmt.Errorf("update plan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Plan, error) {
	var rec planRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec.plan()
}

func (s *PostgresStore) List(ctx context.Context) ([]PlanInfo, error) {
	var recs []planRecord
	if err := listQuery(s.db.WithContext(ctx)).Find(&recs).Error; err != nil {
		return nil, err
	}
	plans := make([]PlanInfo, 0, len(recs))
	for _, rec := range recs {
		plans = append(plans, PlanInfo{ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt})
	}
	return plans, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&planRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete plan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func listQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&planRecord{}).Select("id", "name", "created_at", "updated_at").Order("created_at DESC")
}

func newRecord(name string, doc document.Document) (*planRecord, error) {
	doc.Name = name
	data, err := document.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return &planRecord{Name: name, Document: string(data)}, nil
}

func (rec *planRecord) plan() (*Plan, error) {
	doc, err := document.Unmarshal([]byte(rec.Document))
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", rec.ID, err)
	}
	return &Plan{ID: rec.ID, Name: rec.Name, Document: doc, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}, nil
}
