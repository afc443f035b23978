package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pcforge/builder-backend/internal/entity"
)

const personalisationsCollection = "userPersonalisation"

// PersonalisationRepository defines the interface for personalisation persistence
type PersonalisationRepository interface {
	Create(ctx context.Context, p *entity.Personalisation) error
	Get(ctx context.Context, id string) (*entity.Personalisation, error)
	Update(ctx context.Context, id string, answers []entity.PersonalisationAnswer) error
	Delete(ctx context.Context, id string) error
}

var _ PersonalisationRepository = &PersonalisationDocStore{}

// PersonalisationDocStore implements PersonalisationRepository on the
// document store.
type PersonalisationDocStore struct {
	store *DocumentStore
}

func NewPersonalisationDocStore(store *DocumentStore) *PersonalisationDocStore {
	return &PersonalisationDocStore{store: store}
}

func (r *PersonalisationDocStore) Create(ctx context.Context, p *entity.Personalisation) error {
	if err := r.store.Set(ctx, personalisationsCollection, p.PersonalisationID, p); err != nil {
		return fmt.Errorf("create personalisation: %w", err)
	}
	return nil
}

func (r *PersonalisationDocStore) Get(ctx context.Context, id string) (*entity.Personalisation, error) {
	doc, err := r.store.Get(ctx, personalisationsCollection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, entity.ErrPersonalisationNotFound
		}
		return nil, fmt.Errorf("get personalisation: %w", err)
	}

	var p entity.Personalisation
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decode personalisation: %w", err)
	}
	return &p, nil
}

func (r *PersonalisationDocStore) Update(ctx context.Context, id string, answers []entity.PersonalisationAnswer) error {
	err := r.store.Update(ctx, personalisationsCollection, id, map[string]any{"answers": answers})
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return entity.ErrPersonalisationNotFound
		}
		return fmt.Errorf("update personalisation: %w", err)
	}
	return nil
}

func (r *PersonalisationDocStore) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, personalisationsCollection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return entity.ErrPersonalisationNotFound
		}
		return fmt.Errorf("delete personalisation: %w", err)
	}
	return nil
}
