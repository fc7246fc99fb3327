package dto

import "time"

// ── 仪表盘模块 DTO ──

// SuperAdminStats 超管仪表盘统计
type SuperAdminStats struct {
	TotalSchools       int64 `json:"total_schools"`
	PendingSchools     int64 `json:"pending_schools"`
	ActiveSchools      int64 `json:"active_schools"`
	TotalRegistrations int64 `json:"total_registrations"`
}

// SuperAdminDashboardResponse 超管仪表盘响应
type SuperAdminDashboardResponse struct {
	Stats          SuperAdminStats  `json:"stats"`
	PendingSchools []SchoolResponse `json:"pending_schools"`
}

// SchoolStats 校级仪表盘统计
type SchoolStats struct {
	TotalRegistrations  int64 `json:"total_registrations"`
	PendingVerification int64 `json:"pending_verification"`
	Verified            int64 `json:"verified"`
	TodayRegistrations  int64 `json:"today_registrations"`
}

// SchoolInfo 校级仪表盘的学校信息（含注册链接，供管理员转发）
type SchoolInfo struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	RegistrationLink string `json:"registration_link"`
}

// SchoolStatsResponse 校级仪表盘响应
type SchoolStatsResponse struct {
	Stats               SchoolStats            `json:"stats"`
	SchoolInfo          *SchoolInfo            `json:"school_info"`
	RecentRegistrations []RegistrationResponse `json:"recent_registrations"`
}

// StudentRegistration 学生仪表盘中的报名详情，form_data 已反序列化
type StudentRegistration struct {
	ID           string                 `json:"id"`
	SchoolID     string                 `json:"school_id"`
	Program      string                 `json:"program"`
	AcademicYear string                 `json:"academic_year"`
	Status       string                 `json:"status"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	FormData     map[string]interface{} `json:"form_data"`
	School       *SchoolResponse        `json:"school,omitempty"`
}

// StudentDashboardResponse 学生仪表盘响应
type StudentDashboardResponse struct {
	User         UserBrief            `json:"user"`
	Registration *StudentRegistration `json:"registration"`
	School       *SchoolResponse      `json:"school"`
}
