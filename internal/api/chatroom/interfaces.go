package chatroom

import (
	"context"

	"github.com/pcforge/builder-backend/internal/entity"
)

type ChatUsecase interface {
	CreateChatroom(ctx context.Context, req *entity.CreateChatroomRequest) (*entity.Chatroom, error)
	GetChatroom(ctx context.Context, id string) (*entity.Chatroom, error)
	ListChatroomsByUser(ctx context.Context, userID string) ([]*entity.Chatroom, error)
	DeleteChatroom(ctx context.Context, id string) error
	AddMessage(ctx context.Context, chatroomID string, req *entity.AddMessageRequest) (*entity.Message, error)
	DeleteMessage(ctx context.Context, chatroomID, messageID string) error
}
