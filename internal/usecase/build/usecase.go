package build

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/pcforge/builder-backend/internal/pkg/formatter"
	"github.com/pcforge/builder-backend/internal/repository"
	"go.uber.org/zap"
)

// BuildUsecase implements build business logic: the AI assembly pipeline plus
// plain CRUD and quote export over persisted builds.
type BuildUsecase struct {
	buildRepo  repository.BuildRepository
	fetcher    *Fetcher
	allocator  *Allocator
	prompter   *Prompter
	formatters *formatter.Factory
	logger     *zap.Logger
}

func NewUsecase(
	buildRepo repository.BuildRepository,
	fetcher *Fetcher,
	allocator *Allocator,
	prompter *Prompter,
	formatters *formatter.Factory,
	logger *zap.Logger,
) *BuildUsecase {
	return &BuildUsecase{
		buildRepo:  buildRepo,
		fetcher:    fetcher,
		allocator:  allocator,
		prompter:   prompter,
		formatters: formatters,
		logger:     logger,
	}
}

// GenerateBuild runs the assembly pipeline: CPU and motherboard jointly,
// then GPU, then the remaining categories in fixed order, each selection
// feeding the next prompt. Categories that cannot be resolved stay absent;
// a partial build is still persisted and returned. Only invalid input and
// the final write are fatal.
func (uc *BuildUsecase) GenerateBuild(ctx context.Context, input entity.UserInput) (*entity.Build, error) {
	if input.Budget <= 0 {
		return nil, fmt.Errorf("%w: budget must be positive", entity.ErrInvalidInput)
	}

	ctxzap.Info(ctx, "generating build",
		zap.Float64("budget", input.Budget),
		zap.String("purpose", input.Purpose),
	)

	sctx := &SelectionContext{
		Input:     input,
		Selected:  make(map[entity.Category]*entity.ComponentRecord),
		Remaining: append([]entity.Category{entity.CategoryGPU}, entity.RemainingCategories...),
	}

	uc.selectPairStage(ctx, sctx, entity.CategoryCPU, entity.CategoryMotherboard)
	uc.selectStage(ctx, sctx, entity.CategoryGPU, nil)

	// The remaining candidate lists are independent reads; fetch them all
	// before the sequential selection loop.
	prefetched := uc.prefetchCandidates(ctx, entity.RemainingCategories)
	for i, category := range entity.RemainingCategories {
		uc.selectStage(ctx, sctx, category, prefetched[i])
	}

	now := time.Now().UTC()
	result := &entity.Build{
		BuildID:    uuid.New().String(),
		Components: resolvedComponents(sctx.Selected),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	result.ComputeTotalPrice()

	if err := uc.buildRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("persist build: %w", err)
	}

	ctxzap.Info(ctx, "build generated",
		zap.String("build_id", result.BuildID),
		zap.Int("resolved", len(result.Components)),
		zap.Float64("total_price", result.TotalPrice),
	)

	return result, nil
}

// selectPairStage resolves two categories with a single joint prompt.
func (uc *BuildUsecase) selectPairStage(ctx context.Context, sctx *SelectionContext, catA, catB entity.Category) {
	candsA := uc.fetcher.FetchCategory(ctx, catA)
	candsB := uc.fetcher.FetchCategory(ctx, catB)

	rangeA, filteredA := uc.allocator.Allocate(catA, sctx.Input.Budget, candsA)
	rangeB, filteredB := uc.allocator.Allocate(catB, sctx.Input.Budget, candsB)

	pickA, pickB := uc.prompter.SelectPair(ctx, catA, catB, filteredA, filteredB, sctx, rangeA, rangeB)

	sctx.Selected[catA] = pickA
	sctx.Selected[catB] = pickB
}

// selectStage resolves one category. Candidates may be handed in prefetched;
// nil means fetch now.
func (uc *BuildUsecase) selectStage(ctx context.Context, sctx *SelectionContext, category entity.Category, candidates []entity.ComponentRecord) {
	if candidates == nil {
		candidates = uc.fetcher.FetchCategory(ctx, category)
	}

	priceRange, filtered := uc.allocator.Allocate(category, sctx.Input.Budget, candidates)

	if len(sctx.Remaining) > 0 && sctx.Remaining[0] == category {
		sctx.Remaining = sctx.Remaining[1:]
	}

	sctx.Selected[category] = uc.prompter.SelectComponent(ctx, category, filtered, sctx, priceRange)
}

// prefetchCandidates fetches all candidate lists concurrently, preserving
// category order in the result.
func (uc *BuildUsecase) prefetchCandidates(ctx context.Context, categories []entity.Category) [][]entity.ComponentRecord {
	results := make([][]entity.ComponentRecord, len(categories))

	var wg sync.WaitGroup
	for i, category := range categories {
		wg.Add(1)
		go func(i int, category entity.Category) {
			defer wg.Done()
			results[i] = uc.fetcher.FetchCategory(ctx, category)
		}(i, category)
	}
	wg.Wait()

	return results
}

// resolvedComponents drops the unresolved slots so absent categories stay
// absent in the stored document.
func resolvedComponents(selected map[entity.Category]*entity.ComponentRecord) map[entity.Category]*entity.ComponentRecord {
	components := make(map[entity.Category]*entity.ComponentRecord, len(selected))
	for category, record := range selected {
		if record != nil {
			components[category] = record
		}
	}
	return components
}

// CreateBuild stores a manually assembled build.
func (uc *BuildUsecase) CreateBuild(ctx context.Context, req *entity.CreateBuildRequest) (*entity.Build, error) {
	if len(req.Components) == 0 {
		return nil, fmt.Errorf("%w: components", entity.ErrMissingField)
	}
	for category := range req.Components {
		if err := category.Validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	result := &entity.Build{
		BuildID:     uuid.New().String(),
		Name:        req.Name,
		OwnerUserID: req.OwnerUserID,
		Components:  resolvedComponents(req.Components),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	result.ComputeTotalPrice()

	if err := uc.buildRepo.Create(ctx, result); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "build created", zap.String("build_id", result.BuildID))

	return result, nil
}

func (uc *BuildUsecase) GetBuild(ctx context.Context, id string) (*entity.Build, error) {
	return uc.buildRepo.Get(ctx, id)
}

// ListBuilds returns all builds, or only the given owner's when ownerID is
// set.
func (uc *BuildUsecase) ListBuilds(ctx context.Context, ownerID string) ([]*entity.Build, error) {
	if ownerID != "" {
		return uc.buildRepo.ListByOwner(ctx, ownerID)
	}
	return uc.buildRepo.List(ctx)
}

// UpdateBuild overwrites the mutable fields of an existing build. The total
// price is always recomputed server-side.
func (uc *BuildUsecase) UpdateBuild(ctx context.Context, id string, req *entity.UpdateBuildRequest) (*entity.Build, error) {
	result, err := uc.buildRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		result.Name = *req.Name
	}
	if req.OwnerUserID != nil {
		result.OwnerUserID = *req.OwnerUserID
	}
	if req.Components != nil {
		for category := range req.Components {
			if err := category.Validate(); err != nil {
				return nil, err
			}
		}
		result.Components = resolvedComponents(req.Components)
	}

	result.ComputeTotalPrice()
	result.UpdatedAt = time.Now().UTC()

	if err := uc.buildRepo.Set(ctx, result); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "build updated", zap.String("build_id", id))

	return result, nil
}

func (uc *BuildUsecase) DeleteBuild(ctx context.Context, id string) error {
	if err := uc.buildRepo.Delete(ctx, id); err != nil {
		return err
	}

	ctxzap.Info(ctx, "build deleted", zap.String("build_id", id))

	return nil
}

// ExportBuild renders a build quote in the requested format. Returns the
// document bytes, the content type and a suggested file name.
func (uc *BuildUsecase) ExportBuild(ctx context.Context, id string, format entity.ExportFormat) ([]byte, string, string, error) {
	result, err := uc.buildRepo.Get(ctx, id)
	if err != nil {
		return nil, "", "", err
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", entity.ErrInvalidFormat, err)
	}

	data, err := f.Format(result)
	if err != nil {
		return nil, "", "", fmt.Errorf("format build %s: %w", id, err)
	}

	filename := "build-" + result.BuildID + f.FileExtension()

	ctxzap.Info(ctx, "build exported",
		zap.String("build_id", id),
		zap.String("format", string(format)),
	)

	return data, f.ContentType(), filename, nil
}
