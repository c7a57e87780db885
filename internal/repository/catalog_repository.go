package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/classplanner/timetable-solver/internal/models"
)

// CatalogRepository reads a tenant's scheduling catalog. It implements
// internal/catalog.Reader.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs a CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListTeachers(ctx context.Context, tenantID int64) ([]models.Teacher, error) {
	const query = `SELECT id, tenant_id, full_name, weekly_hours, preferred_days, preferred_periods, created_at, updated_at
FROM teachers WHERE tenant_id = $1 ORDER BY id`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, tenantID); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

func (r *CatalogRepository) ListClassGroups(ctx context.Context, tenantID int64) ([]models.ClassGroup, error) {
	const query = `SELECT id, tenant_id, name, default_room_id, allowed_periods, created_at, updated_at
FROM class_groups WHERE tenant_id = $1 ORDER BY id`
	var groups []models.ClassGroup
	if err := r.db.SelectContext(ctx, &groups, query, tenantID); err != nil {
		return nil, fmt.Errorf("list class groups: %w", err)
	}
	return groups, nil
}

func (r *CatalogRepository) ListRooms(ctx context.Context, tenantID int64) ([]models.Room, error) {
	const query = `SELECT id, tenant_id, name, created_at FROM rooms WHERE tenant_id = $1 ORDER BY id`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query, tenantID); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (r *CatalogRepository) ListPeriods(ctx context.Context, tenantID int64) ([]models.Period, error) {
	const query = `SELECT id, tenant_id, name, start_time, end_time FROM periods WHERE tenant_id = $1 ORDER BY id`
	var periods []models.Period
	if err := r.db.SelectContext(ctx, &periods, query, tenantID); err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return periods, nil
}

func (r *CatalogRepository) ListAssignments(ctx context.Context, tenantID int64) ([]models.Assignment, error) {
	const query = `SELECT id, tenant_id, class_group_id, subject_id, teacher_id, hours_per_week, room_id, created_at
FROM schedule_assignments WHERE tenant_id = $1 ORDER BY id`
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, tenantID); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

func (r *CatalogRepository) ListSubjects(ctx context.Context, tenantID int64) ([]models.Subject, error) {
	const query = `SELECT id, tenant_id, name, default_hours_per_week, default_room_id, created_at, updated_at
FROM subjects WHERE tenant_id = $1 ORDER BY id`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, tenantID); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

func (r *CatalogRepository) ListTeacherSubjects(ctx context.Context, tenantID int64) ([]models.TeacherSubject, error) {
	const query = `SELECT tenant_id, teacher_id, subject_id FROM teacher_subjects WHERE tenant_id = $1 ORDER BY teacher_id, subject_id`
	var rows []models.TeacherSubject
	if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("list teacher subjects: %w", err)
	}
	return rows, nil
}
