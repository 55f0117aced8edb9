package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/classroom-api/internal/models"
)

const studentColumns = `id, name, section, grade, badges, behavior, order_number, behavior_score, participation_score, homework_score, attendance, color, evaluated_at, created_at, updated_at`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the filter ordered by display order, then insertion.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Section != "" {
		args = append(args, filter.Section)
		conditions = append(conditions, fmt.Sprintf("section = $%d", len(args)))
	}
	if len(filter.Colors) > 0 {
		colors := make([]string, 0, len(filter.Colors))
		for _, c := range filter.Colors {
			colors = append(colors, string(c))
		}
		args = append(args, pq.Array(colors))
		conditions = append(conditions, fmt.Sprintf("color = ANY($%d)", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}

	query := "SELECT " + studentColumns + " FROM students"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY order_number ASC NULLS LAST, created_at ASC, id ASC"

	students := make([]models.Student, 0)
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, sql.ErrNoRows
	}
	var student models.Student
	if err := r.db.GetContext(ctx, &student, "SELECT "+studentColumns+" FROM students WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	prepareStudent(student, time.Now().UTC())
	if _, err := r.db.NamedExecContext(ctx, insertStudentQuery, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// BulkCreate inserts all students in one transaction. Either every row is
// committed or none is; the returned error names the failing row index.
func (r *StudentRepository) BulkCreate(ctx context.Context, students []models.Student) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk create students: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	for i := range students {
		prepareStudent(&students[i], now)
		if _, err = tx.NamedExecContext(ctx, insertStudentQuery, &students[i]); err != nil {
			return &RowError{Index: i, Err: err}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk create students: %w", err)
	}
	return nil
}

// Update replaces the descriptive fields of a student. Evaluation fields are untouched.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	if _, err := uuid.Parse(student.ID); err != nil {
		return sql.ErrNoRows
	}
	student.UpdatedAt = time.Now().UTC()
	if student.Badges == nil {
		student.Badges = models.BadgeSet{}
	}
	const query = `UPDATE students SET name = :name, section = :section, grade = :grade, badges = :badges, behavior = :behavior, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return expectAffected(res)
}

// UpdateOrder sets or clears the display order.
func (r *StudentRepository) UpdateOrder(ctx context.Context, id string, orderNumber *int) error {
	if _, err := uuid.Parse(id); err != nil {
		return sql.ErrNoRows
	}
	res, err := r.db.ExecContext(ctx, `UPDATE students SET order_number = $2, updated_at = $3 WHERE id = $1`, id, orderNumber, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update student order: %w", err)
	}
	return expectAffected(res)
}

// SaveEvaluation writes the four scores and the derived color in a single statement.
func (r *StudentRepository) SaveEvaluation(ctx context.Context, id string, eval models.Evaluation, color models.Color, at time.Time) error {
	if _, err := uuid.Parse(id); err != nil {
		return sql.ErrNoRows
	}
	const query = `UPDATE students SET behavior_score = $2, participation_score = $3, homework_score = $4, attendance = $5, color = $6, evaluated_at = $7, updated_at = $7 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, eval.BehaviorScore, eval.ParticipationScore, eval.HomeworkScore, eval.Attendance, string(color), at)
	if err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a student permanently.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return sql.ErrNoRows
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return expectAffected(res)
}

// ListRecent returns the most recently created students.
func (r *StudentRepository) ListRecent(ctx context.Context, limit int) ([]models.RecentEntity, error) {
	entities := make([]models.RecentEntity, 0, limit)
	if err := r.db.SelectContext(ctx, &entities, `SELECT id, name, created_at FROM students ORDER BY created_at DESC, id DESC LIMIT $1`, limit); err != nil {
		return nil, fmt.Errorf("list recent students: %w", err)
	}
	return entities, nil
}

const insertStudentQuery = `INSERT INTO students (` + studentColumns + `)
        VALUES (:id, :name, :section, :grade, :badges, :behavior, :order_number, :behavior_score, :participation_score, :homework_score, :attendance, :color, :evaluated_at, :created_at, :updated_at)`

func prepareStudent(student *models.Student, now time.Time) {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	if student.Badges == nil {
		student.Badges = models.BadgeSet{}
	}
}
