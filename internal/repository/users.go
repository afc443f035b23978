package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pcforge/builder-backend/internal/entity"
)

const usersCollection = "users"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Get(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, id string, partial map[string]any) error
	Delete(ctx context.Context, id string) error
	AddChatroom(ctx context.Context, userID, chatroomID string) error
	RemoveChatroom(ctx context.Context, userID, chatroomID string) error
	FindByChatroom(ctx context.Context, chatroomID string) ([]*entity.User, error)
}

var _ UserRepository = &UserDocStore{}

// UserDocStore implements UserRepository on the document store.
type UserDocStore struct {
	store *DocumentStore
}

func NewUserDocStore(store *DocumentStore) *UserDocStore {
	return &UserDocStore{store: store}
}

func (r *UserDocStore) Create(ctx context.Context, user *entity.User) error {
	if err := r.store.Set(ctx, usersCollection, user.UserID, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserDocStore) Get(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.store.Get(ctx, usersCollection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, entity.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return decodeUser(doc)
}

func (r *UserDocStore) List(ctx context.Context) ([]*entity.User, error) {
	docs, err := r.store.List(ctx, usersCollection)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return decodeUsers(docs)
}

func (r *UserDocStore) Update(ctx context.Context, id string, partial map[string]any) error {
	err := r.store.Update(ctx, usersCollection, id, partial)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return entity.ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserDocStore) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, usersCollection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return entity.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserDocStore) AddChatroom(ctx context.Context, userID, chatroomID string) error {
	err := r.store.ArrayAppend(ctx, usersCollection, userID, "chatrooms", chatroomID)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return entity.ErrUserNotFound
		}
		return fmt.Errorf("add chatroom to user: %w", err)
	}
	return nil
}

func (r *UserDocStore) RemoveChatroom(ctx context.Context, userID, chatroomID string) error {
	err := r.store.ArrayRemoveString(ctx, usersCollection, userID, "chatrooms", chatroomID)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return entity.ErrUserNotFound
		}
		return fmt.Errorf("remove chatroom from user: %w", err)
	}
	return nil
}

func (r *UserDocStore) FindByChatroom(ctx context.Context, chatroomID string) ([]*entity.User, error) {
	docs, err := r.store.QueryArrayContains(ctx, usersCollection, "chatrooms", chatroomID)
	if err != nil {
		return nil, fmt.Errorf("find users by chatroom: %w", err)
	}

	return decodeUsers(docs)
}

func decodeUser(doc []byte) (*entity.User, error) {
	var user entity.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func decodeUsers(docs [][]byte) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(docs))
	for _, doc := range docs {
		user, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
