package build

import (
	"context"

	"github.com/pcforge/builder-backend/internal/entity"
)

type BuildUsecase interface {
	GenerateBuild(ctx context.Context, input entity.UserInput) (*entity.Build, error)
	CreateBuild(ctx context.Context, req *entity.CreateBuildRequest) (*entity.Build, error)
	GetBuild(ctx context.Context, id string) (*entity.Build, error)
	ListBuilds(ctx context.Context, ownerID string) ([]*entity.Build, error)
	UpdateBuild(ctx context.Context, id string, req *entity.UpdateBuildRequest) (*entity.Build, error)
	DeleteBuild(ctx context.Context, id string) error
	ExportBuild(ctx context.Context, id string, format entity.ExportFormat) ([]byte, string, string, error)
}
