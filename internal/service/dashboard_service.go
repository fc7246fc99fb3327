package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"yuksekolah/backend/internal/dto"
	"yuksekolah/backend/internal/model"
	"yuksekolah/backend/internal/repository"
)

var ErrUserHasNoSchool = errors.New("User tidak terkait dengan sekolah")

// DashboardService 仪表盘聚合统计业务接口
type DashboardService interface {
	SuperAdmin(ctx context.Context) (*dto.SuperAdminDashboardResponse, error)
	// SchoolStats 校级统计，范围限定为调用方所属学校
	SchoolStats(ctx context.Context, callerSchoolID *string) (*dto.SchoolStatsResponse, error)
	// Student 学生视角：最近一次报名及其学校
	Student(ctx context.Context, userID string) (*dto.StudentDashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

// ────────────────────── SuperAdmin ──────────────────────

func (s *dashboardService) SuperAdmin(ctx context.Context) (*dto.SuperAdminDashboardResponse, error) {
	totalSchools, err := s.repo.School.Count(ctx)
	if err != nil {
		s.logger.Error("统计学校总数失败", zap.Error(err))
		return nil, err
	}
	pendingSchools, err := s.repo.School.CountByStatus(ctx, model.SchoolStatusPending)
	if err != nil {
		return nil, err
	}
	activeSchools, err := s.repo.School.CountByStatus(ctx, model.SchoolStatusActive)
	if err != nil {
		return nil, err
	}
	totalRegistrations, err := s.repo.Registration.Count(ctx, "")
	if err != nil {
		return nil, err
	}

	pendingList, err := s.repo.School.ListByStatus(ctx, model.SchoolStatusPending, 10)
	if err != nil {
		s.logger.Error("查询待验证学校失败", zap.Error(err))
		return nil, err
	}

	pending := make([]dto.SchoolResponse, 0, len(pendingList))
	for i := range pendingList {
		pending = append(pending, toSchoolResponse(&pendingList[i]))
	}

	return &dto.SuperAdminDashboardResponse{
		Stats: dto.SuperAdminStats{
			TotalSchools:       totalSchools,
			PendingSchools:     pendingSchools,
			ActiveSchools:      activeSchools,
			TotalRegistrations: totalRegistrations,
		},
		PendingSchools: pending,
	}, nil
}

// ────────────────────── SchoolStats ──────────────────────

func (s *dashboardService) SchoolStats(ctx context.Context, callerSchoolID *string) (*dto.SchoolStatsResponse, error) {
	if callerSchoolID == nil {
		return nil, ErrUserHasNoSchool
	}
	schoolID := *callerSchoolID

	total, err := s.repo.Registration.Count(ctx, schoolID)
	if err != nil {
		s.logger.Error("统计报名总数失败", zap.Error(err))
		return nil, err
	}
	pending, err := s.repo.Registration.CountByStatus(ctx, schoolID, model.RegistrationStatusSubmitted)
	if err != nil {
		return nil, err
	}
	verified, err := s.repo.Registration.CountByStatus(ctx, schoolID, model.RegistrationStatusVerified)
	if err != nil {
		return nil, err
	}

	// 今日零点起的新增报名
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.repo.Registration.CountCreatedSince(ctx, schoolID, midnight)
	if err != nil {
		return nil, err
	}

	var schoolInfo *dto.SchoolInfo
	school, err := s.repo.School.GetByID(ctx, schoolID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询学校失败", zap.String("id", schoolID), zap.Error(err))
			return nil, err
		}
	} else {
		link := ""
		if school.RegistrationLink != nil {
			link = *school.RegistrationLink
		}
		schoolInfo = &dto.SchoolInfo{
			ID:               school.SchoolID,
			Name:             school.Name,
			RegistrationLink: link,
		}
	}

	recentList, err := s.repo.Registration.ListRecent(ctx, schoolID, 5)
	if err != nil {
		s.logger.Error("查询最近报名失败", zap.Error(err))
		return nil, err
	}
	recent := make([]dto.RegistrationResponse, 0, len(recentList))
	for i := range recentList {
		recent = append(recent, toRegistrationResponse(&recentList[i]))
	}

	return &dto.SchoolStatsResponse{
		Stats: dto.SchoolStats{
			TotalRegistrations:  total,
			PendingVerification: pending,
			Verified:            verified,
			TodayRegistrations:  today,
		},
		SchoolInfo:          schoolInfo,
		RecentRegistrations: recent,
	}, nil
}

// ────────────────────── Student ──────────────────────

func (s *dashboardService) Student(ctx context.Context, userID string) (*dto.StudentDashboardResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	resp := &dto.StudentDashboardResponse{User: toUserBrief(user)}
	if user.School != nil {
		school := toSchoolResponse(user.School)
		resp.School = &school
	}

	registration, err := s.repo.Registration.GetLatestByStudent(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 尚未报名：仅返回用户信息
			return resp, nil
		}
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return nil, err
	}

	// form_data 解析失败时降级为空对象，不阻断响应
	formData := map[string]interface{}{}
	if registration.FormData != "" {
		if err := json.Unmarshal([]byte(registration.FormData), &formData); err != nil {
			formData = map[string]interface{}{}
		}
	}

	studentReg := &dto.StudentRegistration{
		ID:           registration.RegistrationID,
		SchoolID:     registration.SchoolID,
		Program:      registration.Program,
		AcademicYear: registration.AcademicYear,
		Status:       registration.Status,
		CreatedAt:    registration.CreatedAt,
		UpdatedAt:    registration.UpdatedAt,
		FormData:     formData,
	}
	if registration.School != nil {
		school := toSchoolResponse(registration.School)
		studentReg.School = &school
		resp.School = &school
	}
	resp.Registration = studentReg

	return resp, nil
}
