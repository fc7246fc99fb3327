package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"yuksekolah/backend/config"
	"yuksekolah/backend/internal/dto"
	"yuksekolah/backend/internal/model"
	"yuksekolah/backend/pkg/jwt"
)

func setupTestAuthService() (AuthService, *mockUserRepo) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret-key-for-unit-testing-2026",
			TokenTTL:  24 * time.Hour,
		},
	}

	repo, userRepo, _, _ := newTestRepo()
	jwtMgr := jwt.NewManager(&cfg.Auth)

	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo
}

// createTestUser 直接向 mock 写入一个带 bcrypt 哈希的用户
func createTestUser(userRepo *mockUserRepo, email, password, role string, schoolID *string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		Name:         "测试用户",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		SchoolID:     schoolID,
	}
	_ = userRepo.Create(context.Background(), user)
	return user
}

func TestLogin_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestUser(userRepo, "admin@sekolah.id", "password123", model.RoleSchoolAdmin, strPtr("school-1"))

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@sekolah.id",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if result.Token == "" {
		t.Error("Token 不应为空")
	}
	if result.User.Email != "admin@sekolah.id" {
		t.Errorf("期望 Email=admin@sekolah.id，实际=%s", result.User.Email)
	}
	if result.User.Role != model.RoleSchoolAdmin {
		t.Errorf("期望 Role=school_admin，实际=%s", result.User.Role)
	}
}

func TestLogin_TokenCarriesClaims(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	user := createTestUser(userRepo, "siswa@test.com", "password123", model.RoleStudent, strPtr("school-7"))

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "siswa@test.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	mgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  24 * time.Hour,
	})
	claims, err := mgr.ParseToken(result.Token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if claims.UserID != user.UserID {
		t.Errorf("期望 UserID=%s，实际=%s", user.UserID, claims.UserID)
	}
	if claims.Role != model.RoleStudent {
		t.Errorf("期望 Role=student，实际=%s", claims.Role)
	}
	if claims.SchoolID == nil || *claims.SchoolID != "school-7" {
		t.Errorf("期望 SchoolID=school-7，实际=%v", claims.SchoolID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	createTestUser(userRepo, "admin@sekolah.id", "password123", model.RoleSchoolAdmin, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@sekolah.id",
		Password: "salah-password",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "tidak-ada@test.com",
		Password: "password123",
	})

	// 用户不存在与密码错误返回同一错误，防止账号枚举
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestMe_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	user := createTestUser(userRepo, "admin@sekolah.id", "password123", model.RoleSuperAdmin, nil)

	result, err := svc.Me(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("Me 失败: %v", err)
	}
	if result.User.ID != user.UserID {
		t.Errorf("期望 ID=%s，实际=%s", user.UserID, result.User.ID)
	}
}

func TestMe_NotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Me(context.Background(), "tidak-ada")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestLogout_NoRedis(t *testing.T) {
	svc, _ := setupTestAuthService()

	// Redis 未配置时登出为空操作，不应报错
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Logout 应为空操作，实际错误: %v", err)
	}
}

func strPtr(s string) *string { return &s }
