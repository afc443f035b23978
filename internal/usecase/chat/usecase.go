package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pcforge/builder-backend/internal/config"
	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/pcforge/builder-backend/internal/repository"
	"go.uber.org/zap"
)

// ChatUsecase implements chatroom and message business logic, including the
// assistant reply generation.
type ChatUsecase struct {
	chatroomRepo        repository.ChatroomRepository
	userRepo            repository.UserRepository
	personalisationRepo repository.PersonalisationRepository
	llm                 LLMClient
	cfg                 config.ChatConfig
	logger              *zap.Logger
}

func NewUsecase(
	chatroomRepo repository.ChatroomRepository,
	userRepo repository.UserRepository,
	personalisationRepo repository.PersonalisationRepository,
	llm LLMClient,
	cfg config.ChatConfig,
	logger *zap.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		chatroomRepo:        chatroomRepo,
		userRepo:            userRepo,
		personalisationRepo: personalisationRepo,
		llm:                 llm,
		cfg:                 cfg,
		logger:              logger,
	}
}

// CreateChatroom opens a new conversation thread for an existing user and
// registers it on the user's chatroom list.
func (uc *ChatUsecase) CreateChatroom(ctx context.Context, req *entity.CreateChatroomRequest) (*entity.Chatroom, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id", entity.ErrMissingField)
	}

	if _, err := uc.userRepo.Get(ctx, req.UserID); err != nil {
		return nil, err
	}

	room := &entity.Chatroom{
		ChatroomID: uuid.New().String(),
		UserID:     req.UserID,
		Theme:      req.Theme,
		Messages:   []entity.Message{},
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.chatroomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	if err := uc.userRepo.AddChatroom(ctx, req.UserID, room.ChatroomID); err != nil {
		uc.chatroomRepo.Delete(ctx, room.ChatroomID)
		return nil, fmt.Errorf("register chatroom on user: %w", err)
	}

	ctxzap.Info(ctx, "chatroom created",
		zap.String("chatroom_id", room.ChatroomID),
		zap.String("user_id", req.UserID),
	)

	return room, nil
}

func (uc *ChatUsecase) GetChatroom(ctx context.Context, id string) (*entity.Chatroom, error) {
	return uc.chatroomRepo.Get(ctx, id)
}

func (uc *ChatUsecase) ListChatroomsByUser(ctx context.Context, userID string) ([]*entity.Chatroom, error) {
	return uc.chatroomRepo.ListByUser(ctx, userID)
}

// DeleteChatroom removes the thread and unregisters it from the owning user.
func (uc *ChatUsecase) DeleteChatroom(ctx context.Context, id string) error {
	room, err := uc.chatroomRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.chatroomRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := uc.userRepo.RemoveChatroom(ctx, room.UserID, id); err != nil {
		// The room itself is gone; a stale reference on the user is tolerable.
		if !errors.Is(err, entity.ErrUserNotFound) {
			ctxzap.Warn(ctx, "failed to unregister chatroom from user",
				zap.String("chatroom_id", id),
				zap.String("user_id", room.UserID),
				zap.Error(err),
			)
		}
	}

	ctxzap.Info(ctx, "chatroom deleted", zap.String("chatroom_id", id))

	return nil
}

// AddMessage appends the user's message to the thread, generates the
// assistant reply from the user profile, personalisation answers and recent
// history, appends it too and returns it.
func (uc *ChatUsecase) AddMessage(ctx context.Context, chatroomID string, req *entity.AddMessageRequest) (*entity.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, entity.ErrEmptyMessage
	}

	room, err := uc.chatroomRepo.Get(ctx, chatroomID)
	if err != nil {
		return nil, err
	}

	owner, err := uc.userRepo.Get(ctx, room.UserID)
	if err != nil {
		return nil, err
	}

	sender := req.Sender
	if sender == "" {
		sender = owner.Name
	}

	userMsg := entity.Message{
		MessageID: uuid.New().String(),
		Sender:    sender,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.chatroomRepo.AppendMessage(ctx, chatroomID, userMsg); err != nil {
		return nil, err
	}

	history := append(room.Messages, userMsg)
	prompt := uc.buildReplyPrompt(ctx, owner, history)

	replyText, err := uc.llm.Invoke(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	reply := entity.Message{
		MessageID: uuid.New().String(),
		Sender:    uc.cfg.AssistantName,
		Content:   strings.TrimSpace(replyText),
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.chatroomRepo.AppendMessage(ctx, chatroomID, reply); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "message exchanged",
		zap.String("chatroom_id", chatroomID),
		zap.String("message_id", userMsg.MessageID),
		zap.String("reply_id", reply.MessageID),
	)

	return &reply, nil
}

// DeleteMessage removes one message from the thread.
func (uc *ChatUsecase) DeleteMessage(ctx context.Context, chatroomID, messageID string) error {
	room, err := uc.chatroomRepo.Get(ctx, chatroomID)
	if err != nil {
		return err
	}

	kept := make([]entity.Message, 0, len(room.Messages))
	found := false
	for _, msg := range room.Messages {
		if msg.MessageID == messageID {
			found = true
			continue
		}
		kept = append(kept, msg)
	}
	if !found {
		return entity.ErrMessageNotFound
	}

	if err := uc.chatroomRepo.SetMessages(ctx, chatroomID, kept); err != nil {
		return err
	}

	ctxzap.Info(ctx, "message deleted",
		zap.String("chatroom_id", chatroomID),
		zap.String("message_id", messageID),
	)

	return nil
}

// buildReplyPrompt assembles the completion prompt: the assistant persona
// header, what is known about the user, and the recent raw history capped at
// the configured limit.
func (uc *ChatUsecase) buildReplyPrompt(ctx context.Context, owner *entity.User, history []entity.Message) string {
	var b strings.Builder

	b.WriteString(uc.cfg.PromptHeader)

	b.WriteString("\n\nAbout the user:\n")
	fmt.Fprintf(&b, "- name: %s\n", owner.Name)
	if owner.Age > 0 {
		fmt.Fprintf(&b, "- age: %d\n", owner.Age)
	}
	if owner.Gender != "" {
		fmt.Fprintf(&b, "- gender: %s\n", owner.Gender)
	}
	if owner.Occupation != "" {
		fmt.Fprintf(&b, "- occupation: %s\n", owner.Occupation)
	}
	if owner.Location != "" {
		fmt.Fprintf(&b, "- location: %s\n", owner.Location)
	}

	if owner.PersonalisationID != "" {
		p, err := uc.personalisationRepo.Get(ctx, owner.PersonalisationID)
		if err != nil {
			ctxzap.Warn(ctx, "personalisation unavailable for reply prompt",
				zap.String("personalisation_id", owner.PersonalisationID),
				zap.Error(err),
			)
		} else if len(p.Answers) > 0 {
			b.WriteString("\nWhat the user told us during onboarding:\n")
			for _, answer := range p.Answers {
				fmt.Fprintf(&b, "- %s: %s\n", answer.Question, answer.Answer)
			}
		}
	}

	if len(history) > uc.cfg.HistoryLimit {
		history = history[len(history)-uc.cfg.HistoryLimit:]
	}

	b.WriteString("\nConversation:\n")
	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", msg.Sender, msg.Content)
	}
	fmt.Fprintf(&b, "%s:", uc.cfg.AssistantName)

	return b.String()
}
