package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-api/internal/models"
)

// SectionRepository persists sections. Counters are aggregated from students on read.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository constructs a SectionRepository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

const sectionSelect = `SELECT s.id, s.name, s.grade, s.created_at, s.updated_at,
        COUNT(st.id) AS students,
        COUNT(st.id) FILTER (WHERE st.color = 'green') AS excellent,
        COUNT(st.id) FILTER (WHERE st.color IN ('red', 'yellow')) AS issues
        FROM sections s LEFT JOIN students st ON st.section = s.name`

// List returns all sections with live counters.
func (r *SectionRepository) List(ctx context.Context) ([]models.Section, error) {
	sections := make([]models.Section, 0)
	query := sectionSelect + " GROUP BY s.id ORDER BY s.created_at ASC, s.id ASC"
	if err := r.db.SelectContext(ctx, &sections, query); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// FindByID fetches one section with live counters.
func (r *SectionRepository) FindByID(ctx context.Context, id string) (*models.Section, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, sql.ErrNoRows
	}
	var section models.Section
	if err := r.db.GetContext(ctx, &section, sectionSelect+" WHERE s.id = $1 GROUP BY s.id", id); err != nil {
		return nil, err
	}
	return &section, nil
}

// Create inserts a section.
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if section.CreatedAt.IsZero() {
		section.CreatedAt = now
	}
	section.UpdatedAt = now
	const query = `INSERT INTO sections (id, name, grade, created_at, updated_at) VALUES (:id, :name, :grade, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, section); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	return nil
}

// Delete removes a section. Students keep their section name.
func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return sql.ErrNoRows
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return expectAffected(res)
}

// ListRecent returns the most recently created sections.
func (r *SectionRepository) ListRecent(ctx context.Context, limit int) ([]models.RecentEntity, error) {
	entities := make([]models.RecentEntity, 0, limit)
	if err := r.db.SelectContext(ctx, &entities, `SELECT id, name, created_at FROM sections ORDER BY created_at DESC, id DESC LIMIT $1`, limit); err != nil {
		return nil, fmt.Errorf("list recent sections: %w", err)
	}
	return entities, nil
}
