package usecase

import (
	"context"

	"portfolio-backend/internal/domain"
)

type healthUsecase struct{}

func NewHealthUsecase() domain.HealthUsecase {
	return &healthUsecase{}
}

// Check never inspects dependencies; the mail transport being down does not make the service unhealthy
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	return map[string]string{
		"status": "ok",
	}
}
