package usecase

import (
	"book-review/internal/data/repository"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Review ReviewService
}

func NewService(repo *repository.Repository, catalog BookCatalog, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		Review: NewReviewService(repo, catalog, log),
	}
}
