package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pcforge/builder-backend/internal/entity"
)

const buildsCollection = "builds"

// BuildRepository defines the interface for build persistence
type BuildRepository interface {
	Create(ctx context.Context, build *entity.Build) error
	Get(ctx context.Context, id string) (*entity.Build, error)
	List(ctx context.Context) ([]*entity.Build, error)
	ListByOwner(ctx context.Context, userID string) ([]*entity.Build, error)
	Set(ctx context.Context, build *entity.Build) error
	Delete(ctx context.Context, id string) error
}

var _ BuildRepository = &BuildDocStore{}

// BuildDocStore implements BuildRepository on the document store, one
// document per build keyed by build id.
type BuildDocStore struct {
	store *DocumentStore
}

func NewBuildDocStore(store *DocumentStore) *BuildDocStore {
	return &BuildDocStore{store: store}
}

func (r *BuildDocStore) Create(ctx context.Context, build *entity.Build) error {
	if err := r.store.Set(ctx, buildsCollection, build.BuildID, build); err != nil {
		return fmt.Errorf("create build: %w", err)
	}
	return nil
}

func (r *BuildDocStore) Get(ctx context.Context, id string) (*entity.Build, error) {
	doc, err := r.store.Get(ctx, buildsCollection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, entity.ErrBuildNotFound
		}
		return nil, fmt.Errorf("get build: %w", err)
	}

	return decodeBuild(doc)
}

func (r *BuildDocStore) List(ctx context.Context) ([]*entity.Build, error) {
	docs, err := r.store.List(ctx, buildsCollection)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}

	return decodeBuilds(docs)
}

func (r *BuildDocStore) ListByOwner(ctx context.Context, userID string) ([]*entity.Build, error) {
	docs, err := r.store.QueryEqual(ctx, buildsCollection, "owner_user_id", userID)
	if err != nil {
		return nil, fmt.Errorf("list builds by owner: %w", err)
	}

	return decodeBuilds(docs)
}

func (r *BuildDocStore) Set(ctx context.Context, build *entity.Build) error {
	if err := r.store.Set(ctx, buildsCollection, build.BuildID, build); err != nil {
		return fmt.Errorf("set build: %w", err)
	}
	return nil
}

func (r *BuildDocStore) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, buildsCollection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return entity.ErrBuildNotFound
		}
		return fmt.Errorf("delete build: %w", err)
	}
	return nil
}

func decodeBuild(doc []byte) (*entity.Build, error) {
	var build entity.Build
	if err := json.Unmarshal(doc, &build); err != nil {
		return nil, fmt.Errorf("decode build: %w", err)
	}
	return &build, nil
}

func decodeBuilds(docs [][]byte) ([]*entity.Build, error) {
	builds := make([]*entity.Build, 0, len(docs))
	for _, doc := range docs {
		build, err := decodeBuild(doc)
		if err != nil {
			return nil, err
		}
		builds = append(builds, build)
	}
	return builds, nil
}
