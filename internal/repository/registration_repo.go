package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"yuksekolah/backend/internal/model"
)

// RegistrationRepository 报名数据访问接口
// schoolID 为空串表示不限定学校（super_admin 视角）
type RegistrationRepository interface {
	Create(ctx context.Context, registration *model.Registration) error
	GetByID(ctx context.Context, id string) (*model.Registration, error)
	Update(ctx context.Context, registration *model.Registration) error
	List(ctx context.Context, schoolID string) ([]model.Registration, error)
	ListRecent(ctx context.Context, schoolID string, limit int) ([]model.Registration, error)
	// GetLatestByStudent 学生最近一次报名（学生仪表盘）
	GetLatestByStudent(ctx context.Context, studentID string) (*model.Registration, error)
	Count(ctx context.Context, schoolID string) (int64, error)
	CountByStatus(ctx context.Context, schoolID, status string) (int64, error)
	CountCreatedSince(ctx context.Context, schoolID string, since time.Time) (int64, error)
}

// registrationRepo RegistrationRepository 的 GORM 实现
type registrationRepo struct {
	db *gorm.DB
}

// NewRegistrationRepo 创建 RegistrationRepository 实例
func NewRegistrationRepo(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, registration *model.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *registrationRepo) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	var registration model.Registration
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("School").
		Where("registration_id = ?", id).
		First(&registration).Error
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *registrationRepo) Update(ctx context.Context, registration *model.Registration) error {
	return r.db.WithContext(ctx).Save(registration).Error
}

func (r *registrationRepo) List(ctx context.Context, schoolID string) ([]model.Registration, error) {
	db := r.db.WithContext(ctx)
	if schoolID != "" {
		db = db.Where("school_id = ?", schoolID)
	}

	var registrations []model.Registration
	err := db.Preload("Student").
		Preload("School").
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *registrationRepo) ListRecent(ctx context.Context, schoolID string, limit int) ([]model.Registration, error) {
	db := r.db.WithContext(ctx)
	if schoolID != "" {
		db = db.Where("school_id = ?", schoolID)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}

	var registrations []model.Registration
	err := db.Preload("Student").
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *registrationRepo) GetLatestByStudent(ctx context.Context, studentID string) (*model.Registration, error) {
	var registration model.Registration
	err := r.db.WithContext(ctx).
		Preload("School").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&registration).Error
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *registrationRepo) Count(ctx context.Context, schoolID string) (int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Registration{})
	if schoolID != "" {
		db = db.Where("school_id = ?", schoolID)
	}

	var total int64
	err := db.Count(&total).Error
	return total, err
}

func (r *registrationRepo) CountByStatus(ctx context.Context, schoolID, status string) (int64, error) {
	db := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("status = ?", status)
	if schoolID != "" {
		db = db.Where("school_id = ?", schoolID)
	}

	var total int64
	err := db.Count(&total).Error
	return total, err
}

func (r *registrationRepo) CountCreatedSince(ctx context.Context, schoolID string, since time.Time) (int64, error) {
	db := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("created_at >= ?", since)
	if schoolID != "" {
		db = db.Where("school_id = ?", schoolID)
	}

	var total int64
	err := db.Count(&total).Error
	return total, err
}
