package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/pcforge/builder-backend/internal/repository"
	"go.uber.org/zap"
)

// UserUsecase implements user and personalisation business logic.
type UserUsecase struct {
	userRepo            repository.UserRepository
	personalisationRepo repository.PersonalisationRepository
	logger              *zap.Logger
}

func NewUsecase(
	userRepo repository.UserRepository,
	personalisationRepo repository.PersonalisationRepository,
	logger *zap.Logger,
) *UserUsecase {
	return &UserUsecase{
		userRepo:            userRepo,
		personalisationRepo: personalisationRepo,
		logger:              logger,
	}
}

func (uc *UserUsecase) CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name", entity.ErrMissingField)
	}

	user := &entity.User{
		UserID:            uuid.New().String(),
		Name:              req.Name,
		Age:               req.Age,
		Gender:            req.Gender,
		Occupation:        req.Occupation,
		Location:          req.Location,
		PersonalisationID: req.PersonalisationID,
		Chatrooms:         []string{},
		CreatedAt:         time.Now().UTC(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "user created", zap.String("user_id", user.UserID))

	return user, nil
}

func (uc *UserUsecase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.Get(ctx, id)
}

func (uc *UserUsecase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List(ctx)
}

// UpdateUser applies the non-nil fields of the request and returns the
// updated user.
func (uc *UserUsecase) UpdateUser(ctx context.Context, id string, req *entity.UpdateUserRequest) (*entity.User, error) {
	partial := map[string]any{}
	if req.Name != nil {
		partial["name"] = *req.Name
	}
	if req.Age != nil {
		partial["age"] = *req.Age
	}
	if req.Gender != nil {
		partial["gender"] = *req.Gender
	}
	if req.Occupation != nil {
		partial["occupation"] = *req.Occupation
	}
	if req.Location != nil {
		partial["location"] = *req.Location
	}
	if req.PersonalisationID != nil {
		partial["personalisation_id"] = *req.PersonalisationID
	}

	if len(partial) == 0 {
		return uc.userRepo.Get(ctx, id)
	}

	if err := uc.userRepo.Update(ctx, id, partial); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "user updated", zap.String("user_id", id))

	return uc.userRepo.Get(ctx, id)
}

func (uc *UserUsecase) DeleteUser(ctx context.Context, id string) error {
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	ctxzap.Info(ctx, "user deleted", zap.String("user_id", id))

	return nil
}

// CreatePersonalisation stores a set of onboarding answers and, when a user
// id is given, links it to that user.
func (uc *UserUsecase) CreatePersonalisation(
	ctx context.Context,
	userID string,
	req *entity.CreatePersonalisationRequest,
) (*entity.Personalisation, error) {
	if len(req.Answers) == 0 {
		return nil, fmt.Errorf("%w: answers", entity.ErrMissingField)
	}

	p := &entity.Personalisation{
		PersonalisationID: uuid.New().String(),
		Answers:           req.Answers,
		CreatedAt:         time.Now().UTC(),
	}

	if err := uc.personalisationRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	if userID != "" {
		err := uc.userRepo.Update(ctx, userID, map[string]any{"personalisation_id": p.PersonalisationID})
		if err != nil {
			uc.personalisationRepo.Delete(ctx, p.PersonalisationID)
			return nil, fmt.Errorf("link personalisation to user: %w", err)
		}
	}

	ctxzap.Info(ctx, "personalisation created",
		zap.String("personalisation_id", p.PersonalisationID),
		zap.String("user_id", userID),
	)

	return p, nil
}

func (uc *UserUsecase) GetPersonalisation(ctx context.Context, id string) (*entity.Personalisation, error) {
	return uc.personalisationRepo.Get(ctx, id)
}

func (uc *UserUsecase) UpdatePersonalisation(
	ctx context.Context,
	id string,
	req *entity.UpdatePersonalisationRequest,
) (*entity.Personalisation, error) {
	if len(req.Answers) == 0 {
		return nil, fmt.Errorf("%w: answers", entity.ErrMissingField)
	}

	if err := uc.personalisationRepo.Update(ctx, id, req.Answers); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "personalisation updated", zap.String("personalisation_id", id))

	return uc.personalisationRepo.Get(ctx, id)
}

func (uc *UserUsecase) DeletePersonalisation(ctx context.Context, id string) error {
	if err := uc.personalisationRepo.Delete(ctx, id); err != nil {
		return err
	}

	ctxzap.Info(ctx, "personalisation deleted", zap.String("personalisation_id", id))

	return nil
}
