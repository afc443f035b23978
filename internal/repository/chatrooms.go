package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pcforge/builder-backend/internal/entity"
)

const chatroomsCollection = "chatrooms"

// ChatroomRepository defines the interface for chatroom persistence
type ChatroomRepository interface {
	Create(ctx context.Context, room *entity.Chatroom) error
	Get(ctx context.Context, id string) (*entity.Chatroom, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Chatroom, error)
	Delete(ctx context.Context, id string) error
	AppendMessage(ctx context.Context, id string, msg entity.Message) error
	SetMessages(ctx context.Context, id string, msgs []entity.Message) error
}

var _ ChatroomRepository = &ChatroomDocStore{}

// ChatroomDocStore implements ChatroomRepository on the document store.
// Messages live inside the chatroom document and are appended in place.
type ChatroomDocStore struct {
	store *DocumentStore
}

func NewChatroomDocStore(store *DocumentStore) *ChatroomDocStore {
	return &ChatroomDocStore{store: store}
}

func (r *ChatroomDocStore) Create(ctx context.Context, room *entity.Chatroom) error {
	if err := r.store.Set(ctx, chatroomsCollection, room.ChatroomID, room); err != nil {
		return fmt.Errorf("create chatroom: %w", err)
	}
	return nil
}

func (r *ChatroomDocStore) Get(ctx context.Context, id string) (*entity.Chatroom, error) {
	doc, err := r.store.Get(ctx, chatroomsCollection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, entity.ErrChatroomNotFound
		}
		return nil, fmt.Errorf("get chatroom: %w", err)
	}

	var room entity.Chatroom
	if err := json.Unmarshal(doc, &room); err != nil {
		return nil, fmt.Errorf("decode chatroom: %w", err)
	}
	return &room, nil
}

func (r *ChatroomDocStore) ListByUser(ctx context.Context, userID string) ([]*entity.Chatroom, error) {
	docs, err := r.store.QueryEqual(ctx, chatroomsCollection, "user_id", userID)
	if err != nil {
		return nil, fmt.Errorf("list chatrooms by user: %w", err)
	}

	rooms := make([]*entity.Chatroom, 0, len(docs))
	for _, doc := range docs {
		var room entity.Chatroom
		if err := json.Unmarshal(doc, &room); err != nil {
			return nil, fmt.Errorf("decode chatroom: %w", err)
		}
		rooms = append(rooms, &room)
	}
	return rooms, nil
}

func (r *ChatroomDocStore) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, chatroomsCollection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return entity.ErrChatroomNotFound
		}
		return fmt.Errorf("delete chatroom: %w", err)
	}
	return nil
}

func (r *ChatroomDocStore) AppendMessage(ctx context.Context, id string, msg entity.Message) error {
	err := r.store.ArrayAppend(ctx, chatroomsCollection, id, "messages", msg)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return entity.ErrChatroomNotFound
		}
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

func (r *ChatroomDocStore) SetMessages(ctx context.Context, id string, msgs []entity.Message) error {
	err := r.store.Update(ctx, chatroomsCollection, id, map[string]any{"messages": msgs})
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return entity.ErrChatroomNotFound
		}
		return fmt.Errorf("set messages: %w", err)
	}
	return nil
}
