package personalisation

import (
	"context"

	"github.com/pcforge/builder-backend/internal/entity"
)

type PersonalisationUsecase interface {
	CreatePersonalisation(ctx context.Context, userID string, req *entity.CreatePersonalisationRequest) (*entity.Personalisation, error)
	GetPersonalisation(ctx context.Context, id string) (*entity.Personalisation, error)
	UpdatePersonalisation(ctx context.Context, id string, req *entity.UpdatePersonalisationRequest) (*entity.Personalisation, error)
	DeletePersonalisation(ctx context.Context, id string) error
}
