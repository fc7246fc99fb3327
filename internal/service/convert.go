package service

import (
	"yuksekolah/backend/internal/dto"
	"yuksekolah/backend/internal/model"
)

// ── 模型 → DTO 转换 ──

func toUserResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		SchoolID:  u.SchoolID,
		CreatedAt: u.CreatedAt,
	}
	if u.School != nil {
		school := toSchoolResponse(u.School)
		resp.School = &school
	}
	return resp
}

func toUserBrief(u *model.User) dto.UserBrief {
	return dto.UserBrief{
		ID:    u.UserID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func toSchoolResponse(s *model.School) dto.SchoolResponse {
	return dto.SchoolResponse{
		ID:               s.SchoolID,
		Name:             s.Name,
		Email:            s.Email,
		Phone:            s.Phone,
		Address:          s.Address,
		Status:           s.Status,
		RegistrationLink: s.RegistrationLink,
		VerifiedAt:       s.VerifiedAt,
		CreatedAt:        s.CreatedAt,
	}
}

func toSchoolSummary(s *model.School) dto.SchoolSummary {
	return dto.SchoolSummary{
		ID:     s.SchoolID,
		Name:   s.Name,
		Status: s.Status,
	}
}

func toRegistrationResponse(r *model.Registration) dto.RegistrationResponse {
	resp := dto.RegistrationResponse{
		ID:           r.RegistrationID,
		StudentID:    r.StudentID,
		SchoolID:     r.SchoolID,
		Program:      r.Program,
		AcademicYear: r.AcademicYear,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Student != nil {
		student := toUserBrief(r.Student)
		resp.Student = &student
	}
	if r.School != nil {
		school := toSchoolSummary(r.School)
		resp.School = &school
	}
	return resp
}
