package repository

import (
	"context"

	"gorm.io/gorm"

	"yuksekolah/backend/internal/model"
)

// SchoolRepository 学校数据访问接口
type SchoolRepository interface {
	Create(ctx context.Context, school *model.School) error
	GetByID(ctx context.Context, id string) (*model.School, error)
	GetByEmail(ctx context.Context, email string) (*model.School, error)
	// GetByLink 根据注册链接查询学校（链接唯一）
	GetByLink(ctx context.Context, link string) (*model.School, error)
	Update(ctx context.Context, school *model.School) error
	// Delete 硬删除学校（拒绝路径），不留审计记录
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.School, error)
	ListByStatus(ctx context.Context, status string, limit int) ([]model.School, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// schoolRepo SchoolRepository 的 GORM 实现
type schoolRepo struct {
	db *gorm.DB
}

// NewSchoolRepo 创建 SchoolRepository 实例
func NewSchoolRepo(db *gorm.DB) SchoolRepository {
	return &schoolRepo{db: db}
}

func (r *schoolRepo) Create(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *schoolRepo) GetByID(ctx context.Context, id string) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).
		Where("school_id = ?", id).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepo) GetByEmail(ctx context.Context, email string) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepo) GetByLink(ctx context.Context, link string) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).
		Where("registration_link = ?", link).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepo) Update(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

func (r *schoolRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("school_id = ?", id).
		Delete(&model.School{}).Error
}

func (r *schoolRepo) List(ctx context.Context) ([]model.School, error) {
	var schools []model.School
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&schools).Error
	if err != nil {
		return nil, err
	}
	return schools, nil
}

func (r *schoolRepo) ListByStatus(ctx context.Context, status string, limit int) ([]model.School, error) {
	db := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var schools []model.School
	if err := db.Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

func (r *schoolRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.School{}).
		Count(&total).Error
	return total, err
}

func (r *schoolRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.School{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}
