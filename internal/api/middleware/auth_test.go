package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"yuksekolah/backend/config"
	"yuksekolah/backend/internal/model"
	"yuksekolah/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  time.Hour,
	})
}

// protectedRouter 认证 + 角色双层守卫的测试路由
func protectedRouter(mgr *jwt.Manager, allowedRoles ...string) *gin.Engine {
	r := gin.New()
	group := r.Group("", JWTAuth(mgr, nil))
	if len(allowedRoles) > 0 {
		group.Use(RoleAuth(allowedRoles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	return r
}

func TestJWTAuth_NoToken(t *testing.T) {
	r := protectedRouter(testJWTManager())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	r := protectedRouter(testJWTManager())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	r := protectedRouter(testJWTManager())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bukan.token.valid")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	mgr := testJWTManager()
	r := protectedRouter(mgr)

	schoolID := "school-1"
	token, err := mgr.GenerateToken("u1", "a@t.com", model.RoleSchoolAdmin, &schoolID)
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRoleAuth_AllowedRole(t *testing.T) {
	mgr := testJWTManager()
	r := protectedRouter(mgr, model.RoleSuperAdmin)

	token, _ := mgr.GenerateToken("u1", "a@t.com", model.RoleSuperAdmin, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRoleAuth_ForbiddenRole(t *testing.T) {
	mgr := testJWTManager()
	r := protectedRouter(mgr, model.RoleSuperAdmin)

	schoolID := "school-1"
	token, _ := mgr.GenerateToken("u1", "siswa@t.com", model.RoleStudent, &schoolID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequestID_Generated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(200) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("响应头应携带生成的 X-Request-ID")
	}
}

func TestRequestID_Passthrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(200) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "trace-abc-123")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "trace-abc-123" {
		t.Errorf("应透传请求方的 Request-ID，实际=%s", got)
	}
}
