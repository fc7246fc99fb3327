package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"yuksekolah/backend/internal/dto"
	"yuksekolah/backend/internal/model"
	"yuksekolah/backend/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrEmailExists      = errors.New("Email sudah terdaftar")
	ErrSelfDelete       = errors.New("Tidak dapat menghapus akun sendiri")
	ErrNoPermission     = errors.New("Akses ditolak. Anda tidak memiliki izin untuk resource ini.")
	ErrOnlyStudents     = errors.New("School admin hanya dapat mengelola akun siswa")
	ErrNotYourSchool    = errors.New("Siswa bukan dari sekolah Anda")
	ErrSchoolIDRequired = errors.New("school_id wajib diisi untuk peran school_admin dan student")
)

// UserService 用户账号管理业务接口
// super_admin 拥有全量权限；school_admin 仅限本校 student 账号
type UserService interface {
	List(ctx context.Context, roleFilter, callerRole string, callerSchoolID *string) ([]dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest, callerRole string, callerSchoolID *string) (*dto.CreateUserResponse, error)
	GetByID(ctx context.Context, id, callerRole string, callerSchoolID *string) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerRole string, callerSchoolID *string) (*dto.UserResponse, error)
	Delete(ctx context.Context, id, callerID, callerRole string, callerSchoolID *string) error
	// ResetPassword 生成新的随机密码并仅在响应中返回一次
	ResetPassword(ctx context.Context, id, callerRole string, callerSchoolID *string) (*dto.ResetPasswordResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, roleFilter, callerRole string, callerSchoolID *string) ([]dto.UserResponse, error) {
	filters := &repository.UserListFilters{Role: roleFilter}

	// school_admin 自动收敛为本校 student
	if callerRole == model.RoleSchoolAdmin {
		if callerSchoolID == nil {
			return nil, ErrNoPermission
		}
		filters.Role = model.RoleStudent
		filters.SchoolID = *callerSchoolID
	}

	users, err := s.repo.User.List(ctx, filters)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerRole string, callerSchoolID *string) (*dto.CreateUserResponse, error) {
	role := req.Role
	schoolID := req.SchoolID

	// school_admin 只能在本校创建 student
	if callerRole == model.RoleSchoolAdmin {
		if callerSchoolID == nil {
			return nil, ErrNoPermission
		}
		if role != model.RoleStudent {
			return nil, ErrOnlyStudents
		}
		schoolID = callerSchoolID
	}

	// school_admin / student 必须归属学校
	if role != model.RoleSuperAdmin {
		if schoolID == nil {
			return nil, ErrSchoolIDRequired
		}
		if _, err := s.repo.School.GetByID(ctx, *schoolID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSchoolNotFound
			}
			return nil, err
		}
	} else {
		schoolID = nil
	}

	// 邮箱唯一性
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tempPassword, err := generateTempPassword(8)
	if err != nil {
		s.logger.Error("生成临时密码失败", zap.Error(err))
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		SchoolID:     schoolID,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.CreateUserResponse{
		Message:      "User berhasil dibuat",
		User:         toUserResponse(user),
		TempPassword: tempPassword,
	}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id, callerRole string, callerSchoolID *string) (*dto.UserResponse, error) {
	user, err := s.getScoped(ctx, id, callerRole, callerSchoolID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerRole string, callerSchoolID *string) (*dto.UserResponse, error) {
	user, err := s.getScoped(ctx, id, callerRole, callerSchoolID)
	if err != nil {
		return nil, err
	}

	// 角色变更仅限 super_admin
	if req.Role != nil && callerRole != model.RoleSuperAdmin {
		return nil, ErrNoPermission
	}

	// 应用更新字段（仅更新非 nil 字段）
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.User.GetByEmail(ctx, *req.Email)
		if err == nil && existing.UserID != id {
			return nil, ErrEmailExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id, callerID, callerRole string, callerSchoolID *string) error {
	if id == callerID {
		return ErrSelfDelete
	}

	if _, err := s.getScoped(ctx, id, callerRole, callerSchoolID); err != nil {
		return err
	}

	// 硬删除，关联报名记录由数据库级联清理
	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("用户已删除", zap.String("user_id", id))
	return nil
}

// ────────────────────── ResetPassword ──────────────────────

func (s *userService) ResetPassword(ctx context.Context, id, callerRole string, callerSchoolID *string) (*dto.ResetPasswordResponse, error) {
	user, err := s.getScoped(ctx, id, callerRole, callerSchoolID)
	if err != nil {
		return nil, err
	}

	newPassword, err := generateTempPassword(8)
	if err != nil {
		s.logger.Error("生成新密码失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user.PasswordHash = string(hash)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("重置密码失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.ResetPasswordResponse{
		Message:     "Password berhasil direset",
		NewPassword: newPassword,
		Warning:     "Catat password baru ini! Password tidak akan ditampilkan lagi setelah halaman ditutup.",
	}, nil
}

// getScoped 加载用户并执行租户范围检查
// school_admin 只能触达本校 student 账号
func (s *userService) getScoped(ctx context.Context, id, callerRole string, callerSchoolID *string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if callerRole == model.RoleSchoolAdmin {
		if user.Role != model.RoleStudent {
			return nil, ErrOnlyStudents
		}
		if callerSchoolID == nil || user.SchoolID == nil || *user.SchoolID != *callerSchoolID {
			return nil, ErrNotYourSchool
		}
	}

	return user, nil
}

// generateTempPassword 生成指定长度的随机密码（保证包含字母和数字）
func generateTempPassword(length int) (string, error) {
	const letters = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	const digits = "23456789"
	const all = letters + digits

	if length < 4 {
		length = 8
	}

	result := make([]byte, length)

	// 保证至少1个字母+1个数字
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
	if err != nil {
		return "", err
	}
	result[0] = letters[n.Int64()]

	n, err = rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
	if err != nil {
		return "", err
	}
	result[1] = digits[n.Int64()]

	for i := 2; i < length; i++ {
		n, err = rand.Int(rand.Reader, big.NewInt(int64(len(all))))
		if err != nil {
			return "", err
		}
		result[i] = all[n.Int64()]
	}

	// 打乱顺序，避免固定前缀模式
	for i := length - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		result[i], result[j.Int64()] = result[j.Int64()], result[i]
	}

	return string(result), nil
}
