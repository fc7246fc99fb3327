package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"yuksekolah/backend/internal/model"
)

func setupTestDashboardService() (DashboardService, *mockUserRepo, *mockSchoolRepo, *mockRegistrationRepo) {
	repo, userRepo, schoolRepo, regRepo := newTestRepo()
	svc := NewDashboardService(repo, zap.NewNop())
	return svc, userRepo, schoolRepo, regRepo
}

func TestSuperAdminDashboard(t *testing.T) {
	svc, _, schoolRepo, regRepo := setupTestDashboardService()

	ctx := context.Background()
	_ = schoolRepo.Create(ctx, &model.School{SchoolID: "s1", Name: "A", Email: "a@t.id", Status: model.SchoolStatusPending})
	_ = schoolRepo.Create(ctx, &model.School{SchoolID: "s2", Name: "B", Email: "b@t.id", Status: model.SchoolStatusActive})
	_ = schoolRepo.Create(ctx, &model.School{SchoolID: "s3", Name: "C", Email: "c@t.id", Status: model.SchoolStatusActive})
	_ = regRepo.Create(ctx, &model.Registration{StudentID: "u1", SchoolID: "s2", Status: model.RegistrationStatusSubmitted})
	_ = regRepo.Create(ctx, &model.Registration{StudentID: "u2", SchoolID: "s3", Status: model.RegistrationStatusVerified})

	result, err := svc.SuperAdmin(ctx)
	if err != nil {
		t.Fatalf("SuperAdmin 失败: %v", err)
	}

	if result.Stats.TotalSchools != 3 {
		t.Errorf("期望 TotalSchools=3，实际=%d", result.Stats.TotalSchools)
	}
	if result.Stats.PendingSchools != 1 {
		t.Errorf("期望 PendingSchools=1，实际=%d", result.Stats.PendingSchools)
	}
	if result.Stats.ActiveSchools != 2 {
		t.Errorf("期望 ActiveSchools=2，实际=%d", result.Stats.ActiveSchools)
	}
	if result.Stats.TotalRegistrations != 2 {
		t.Errorf("期望 TotalRegistrations=2，实际=%d", result.Stats.TotalRegistrations)
	}
	if len(result.PendingSchools) != 1 || result.PendingSchools[0].ID != "s1" {
		t.Errorf("待验证列表应仅含 s1，实际=%v", result.PendingSchools)
	}
}

func TestSchoolStatsDashboard(t *testing.T) {
	svc, _, schoolRepo, regRepo := setupTestDashboardService()

	ctx := context.Background()
	link := "statslink"
	_ = schoolRepo.Create(ctx, &model.School{
		SchoolID:         "s1",
		Name:             "SMA Statistik",
		Email:            "stat@t.id",
		Status:           model.SchoolStatusActive,
		RegistrationLink: &link,
	})

	// 昨日 1 条 + 今日 2 条，其中 1 条已验证
	_ = regRepo.Create(ctx, &model.Registration{
		StudentID: "u1", SchoolID: "s1",
		Status:    model.RegistrationStatusVerified,
		BaseModel: model.BaseModel{CreatedAt: time.Now().Add(-36 * time.Hour)},
	})
	_ = regRepo.Create(ctx, &model.Registration{StudentID: "u2", SchoolID: "s1", Status: model.RegistrationStatusSubmitted})
	_ = regRepo.Create(ctx, &model.Registration{StudentID: "u3", SchoolID: "s1", Status: model.RegistrationStatusSubmitted})
	// 他校数据不计入
	_ = regRepo.Create(ctx, &model.Registration{StudentID: "u4", SchoolID: "s2", Status: model.RegistrationStatusSubmitted})

	result, err := svc.SchoolStats(ctx, strPtr("s1"))
	if err != nil {
		t.Fatalf("SchoolStats 失败: %v", err)
	}

	if result.Stats.TotalRegistrations != 3 {
		t.Errorf("期望 TotalRegistrations=3，实际=%d", result.Stats.TotalRegistrations)
	}
	if result.Stats.PendingVerification != 2 {
		t.Errorf("期望 PendingVerification=2，实际=%d", result.Stats.PendingVerification)
	}
	if result.Stats.Verified != 1 {
		t.Errorf("期望 Verified=1，实际=%d", result.Stats.Verified)
	}
	if result.Stats.TodayRegistrations != 2 {
		t.Errorf("期望 TodayRegistrations=2，实际=%d", result.Stats.TodayRegistrations)
	}
	if result.SchoolInfo == nil || result.SchoolInfo.RegistrationLink != "statslink" {
		t.Errorf("SchoolInfo 应携带注册链接，实际=%v", result.SchoolInfo)
	}
	if len(result.RecentRegistrations) != 3 {
		t.Errorf("期望最近报名 3 条，实际=%d", len(result.RecentRegistrations))
	}
}

func TestSchoolStatsDashboard_NoSchool(t *testing.T) {
	svc, _, _, _ := setupTestDashboardService()

	_, err := svc.SchoolStats(context.Background(), nil)
	if !errors.Is(err, ErrUserHasNoSchool) {
		t.Errorf("期望 ErrUserHasNoSchool，实际: %v", err)
	}
}

func TestStudentDashboard(t *testing.T) {
	svc, userRepo, _, regRepo := setupTestDashboardService()

	ctx := context.Background()
	student := &model.User{
		Name:     "Andi",
		Email:    "andi@test.com",
		Role:     model.RoleStudent,
		SchoolID: strPtr("s1"),
	}
	_ = userRepo.Create(ctx, student)

	_ = regRepo.Create(ctx, &model.Registration{
		StudentID: student.UserID,
		SchoolID:  "s1",
		Program:   "IPA",
		Status:    model.RegistrationStatusSubmitted,
		FormData:  `{"name":"Andi","email":"andi@test.com"}`,
		School:    &model.School{SchoolID: "s1", Name: "SMA Nusantara"},
	})

	result, err := svc.Student(ctx, student.UserID)
	if err != nil {
		t.Fatalf("Student 失败: %v", err)
	}

	if result.User.Email != "andi@test.com" {
		t.Errorf("期望用户邮箱，实际=%s", result.User.Email)
	}
	if result.Registration == nil {
		t.Fatal("应返回最近一次报名")
	}
	if result.Registration.Program != "IPA" {
		t.Errorf("期望 Program=IPA，实际=%s", result.Registration.Program)
	}
	if result.Registration.FormData["name"] != "Andi" {
		t.Errorf("form_data 应已解析，实际=%v", result.Registration.FormData)
	}
	if result.School == nil || result.School.Name != "SMA Nusantara" {
		t.Errorf("应携带学校信息，实际=%v", result.School)
	}
}

func TestStudentDashboard_NoRegistration(t *testing.T) {
	svc, userRepo, _, _ := setupTestDashboardService()

	student := createTestUser(userRepo, "baru@test.com", "pass", model.RoleStudent, strPtr("s1"))

	result, err := svc.Student(context.Background(), student.UserID)
	if err != nil {
		t.Fatalf("Student 失败: %v", err)
	}
	if result.Registration != nil {
		t.Error("尚未报名时 Registration 应为 nil")
	}
}

func TestStudentDashboard_MalformedFormData(t *testing.T) {
	svc, userRepo, _, regRepo := setupTestDashboardService()

	ctx := context.Background()
	student := createTestUser(userRepo, "rusak@test.com", "pass", model.RoleStudent, strPtr("s1"))
	_ = regRepo.Create(ctx, &model.Registration{
		StudentID: student.UserID,
		SchoolID:  "s1",
		Status:    model.RegistrationStatusSubmitted,
		FormData:  "{bukan json",
	})

	result, err := svc.Student(ctx, student.UserID)
	if err != nil {
		t.Fatalf("损坏的 form_data 不应阻断响应: %v", err)
	}
	if result.Registration == nil || len(result.Registration.FormData) != 0 {
		t.Error("损坏的 form_data 应降级为空对象")
	}
}
