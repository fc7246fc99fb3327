package jwt

import (
	"strings"
	"testing"
	"time"

	"yuksekolah/backend/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  24 * time.Hour,
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager()
	schoolID := "school-1"

	token, err := m.GenerateToken("user-1", "admin@sekolah.id", "super_admin", &schoolID)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.Email != "admin@sekolah.id" {
		t.Errorf("期望 Email=admin@sekolah.id，实际=%s", claims.Email)
	}
	if claims.Role != "super_admin" {
		t.Errorf("期望 Role=super_admin，实际=%s", claims.Role)
	}
	if claims.SchoolID == nil || *claims.SchoolID != "school-1" {
		t.Errorf("期望 SchoolID=school-1，实际=%v", claims.SchoolID)
	}
	if claims.Issuer != "yuksekolah" {
		t.Errorf("期望 Issuer=yuksekolah，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	// 过期时间约为 24h
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("Token TTL 期望约24h，实际=%v", ttl)
	}
}

func TestParseToken_NilSchoolID(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("user-2", "a@b.com", "super_admin", nil)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if claims.SchoolID != nil {
		t.Errorf("期望 SchoolID=nil，实际=%v", *claims.SchoolID)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  -1 * time.Minute, // 签发即过期
	})

	token, err := m.GenerateToken("user-1", "a@b.com", "student", nil)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	m := newTestManager()

	if _, err := m.ParseToken("not-a-jwt"); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager(&config.AuthConfig{
		JWTSecret: "another-secret-entirely-different",
		TokenTTL:  24 * time.Hour,
	})

	token, err := other.GenerateToken("user-1", "a@b.com", "student", nil)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_TamperedPayload(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("user-1", "a@b.com", "student", nil)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("JWT 应包含 3 段，实际=%d", len(parts))
	}
	tampered := parts[0] + ".eyJyb2xlIjoic3VwZXJfYWRtaW4ifQ." + parts[2]

	if _, err := m.ParseToken(tampered); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
