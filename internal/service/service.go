package service

import (
	"go.uber.org/zap"

	"yuksekolah/backend/config"
	"yuksekolah/backend/internal/repository"
	"yuksekolah/backend/pkg/jwt"
	"yuksekolah/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	School       SchoolService
	Registration RegistrationService
	User         UserService
	Dashboard    DashboardService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		School:       NewSchoolService(repo, logger),
		Registration: NewRegistrationService(repo, logger),
		User:         NewUserService(repo, logger),
		Dashboard:    NewDashboardService(repo, logger),
	}
}
