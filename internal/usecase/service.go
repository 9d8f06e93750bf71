package usecase

import (
	"order-management/internal/data/repository"
	"order-management/pkg/token"
	"order-management/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth  AuthService
	Order OrderService
}

func NewService(repo *repository.Repository, maker *token.Maker, queue OrderEnqueuer, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:  NewAuthService(repo, maker, config, log),
		Order: NewOrderService(repo, queue, log),
	}
}
