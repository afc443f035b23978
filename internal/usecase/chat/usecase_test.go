package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pcforge/builder-backend/internal/config"
	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memChatrooms struct {
	rooms map[string]*entity.Chatroom
}

func newMemChatrooms() *memChatrooms {
	return &memChatrooms{rooms: make(map[string]*entity.Chatroom)}
}

func (m *memChatrooms) Create(ctx context.Context, room *entity.Chatroom) error {
	clone := *room
	m.rooms[room.ChatroomID] = &clone
	return nil
}

func (m *memChatrooms) Get(ctx context.Context, id string) (*entity.Chatroom, error) {
	room, ok := m.rooms[id]
	if !ok {
		return nil, entity.ErrChatroomNotFound
	}
	clone := *room
	clone.Messages = append([]entity.Message{}, room.Messages...)
	return &clone, nil
}

func (m *memChatrooms) ListByUser(ctx context.Context, userID string) ([]*entity.Chatroom, error) {
	out := []*entity.Chatroom{}
	for _, room := range m.rooms {
		if room.UserID == userID {
			out = append(out, room)
		}
	}
	return out, nil
}

func (m *memChatrooms) Delete(ctx context.Context, id string) error {
	if _, ok := m.rooms[id]; !ok {
		return entity.ErrChatroomNotFound
	}
	delete(m.rooms, id)
	return nil
}

func (m *memChatrooms) AppendMessage(ctx context.Context, id string, msg entity.Message) error {
	room, ok := m.rooms[id]
	if !ok {
		return entity.ErrChatroomNotFound
	}
	room.Messages = append(room.Messages, msg)
	return nil
}

func (m *memChatrooms) SetMessages(ctx context.Context, id string, msgs []entity.Message) error {
	room, ok := m.rooms[id]
	if !ok {
		return entity.ErrChatroomNotFound
	}
	room.Messages = msgs
	return nil
}

type memUsers struct {
	users map[string]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*entity.User)}
}

func (m *memUsers) Create(ctx context.Context, user *entity.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *memUsers) Get(ctx context.Context, id string) (*entity.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

func (m *memUsers) List(ctx context.Context) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

func (m *memUsers) Update(ctx context.Context, id string, partial map[string]any) error {
	if _, ok := m.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	return nil
}

func (m *memUsers) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return entity.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUsers) AddChatroom(ctx context.Context, userID, chatroomID string) error {
	user, ok := m.users[userID]
	if !ok {
		return entity.ErrUserNotFound
	}
	user.Chatrooms = append(user.Chatrooms, chatroomID)
	return nil
}

func (m *memUsers) RemoveChatroom(ctx context.Context, userID, chatroomID string) error {
	user, ok := m.users[userID]
	if !ok {
		return entity.ErrUserNotFound
	}
	kept := []string{}
	for _, id := range user.Chatrooms {
		if id != chatroomID {
			kept = append(kept, id)
		}
	}
	user.Chatrooms = kept
	return nil
}

func (m *memUsers) FindByChatroom(ctx context.Context, chatroomID string) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, user := range m.users {
		for _, id := range user.Chatrooms {
			if id == chatroomID {
				out = append(out, user)
			}
		}
	}
	return out, nil
}

type memPersonalisations struct {
	items map[string]*entity.Personalisation
}

func newMemPersonalisations() *memPersonalisations {
	return &memPersonalisations{items: make(map[string]*entity.Personalisation)}
}

func (m *memPersonalisations) Create(ctx context.Context, p *entity.Personalisation) error {
	m.items[p.PersonalisationID] = p
	return nil
}

func (m *memPersonalisations) Get(ctx context.Context, id string) (*entity.Personalisation, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, entity.ErrPersonalisationNotFound
	}
	return p, nil
}

func (m *memPersonalisations) Update(ctx context.Context, id string, answers []entity.PersonalisationAnswer) error {
	p, ok := m.items[id]
	if !ok {
		return entity.ErrPersonalisationNotFound
	}
	p.Answers = answers
	return nil
}

func (m *memPersonalisations) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return entity.ErrPersonalisationNotFound
	}
	delete(m.items, id)
	return nil
}

type stubLLM struct {
	answer  string
	err     error
	prompts []string
}

func (s *stubLLM) Invoke(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func testChatConfig() config.ChatConfig {
	return config.ChatConfig{
		PromptHeader:  "You are ForgeBot, a friendly PC-building companion.",
		AssistantName: "ForgeBot",
		HistoryLimit:  3,
	}
}

type chatFixture struct {
	rooms   *memChatrooms
	users   *memUsers
	persons *memPersonalisations
	llm     *stubLLM
	uc      *ChatUsecase
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	rooms := newMemChatrooms()
	users := newMemUsers()
	persons := newMemPersonalisations()
	llm := &stubLLM{answer: "Sounds like a solid plan!"}

	users.Create(context.Background(), &entity.User{
		UserID:     "u1",
		Name:       "Lina",
		Occupation: "3D artist",
		Chatrooms:  []string{},
	})

	uc := NewUsecase(rooms, users, persons, llm, testChatConfig(), zap.NewNop())

	return &chatFixture{rooms: rooms, users: users, persons: persons, llm: llm, uc: uc}
}

func (f *chatFixture) openRoom(t *testing.T) *entity.Chatroom {
	t.Helper()
	room, err := f.uc.CreateChatroom(context.Background(), &entity.CreateChatroomRequest{
		UserID: "u1",
		Theme:  "first build",
	})
	require.NoError(t, err)
	return room
}

func TestCreateChatroomRegistersOnUser(t *testing.T) {
	f := newChatFixture(t)

	room := f.openRoom(t)

	assert.NotEmpty(t, room.ChatroomID)
	owner, _ := f.users.Get(context.Background(), "u1")
	assert.Contains(t, owner.Chatrooms, room.ChatroomID)
}

func TestCreateChatroomUnknownUser(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.uc.CreateChatroom(context.Background(), &entity.CreateChatroomRequest{UserID: "ghost"})

	require.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestAddMessageRejectsEmptyContent(t *testing.T) {
	f := newChatFixture(t)
	room := f.openRoom(t)

	_, err := f.uc.AddMessage(context.Background(), room.ChatroomID, &entity.AddMessageRequest{Content: "   "})

	require.ErrorIs(t, err, entity.ErrEmptyMessage)
	assert.Empty(t, f.llm.prompts)
}

func TestAddMessageStoresBothSidesAndReturnsReply(t *testing.T) {
	f := newChatFixture(t)
	room := f.openRoom(t)

	reply, err := f.uc.AddMessage(context.Background(), room.ChatroomID, &entity.AddMessageRequest{
		Content: "What GPU should I get for 900?",
	})

	require.NoError(t, err)
	assert.Equal(t, "ForgeBot", reply.Sender)
	assert.Equal(t, "Sounds like a solid plan!", reply.Content)

	stored, err := f.uc.GetChatroom(context.Background(), room.ChatroomID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 2)
	assert.Equal(t, "Lina", stored.Messages[0].Sender)
	assert.Equal(t, "ForgeBot", stored.Messages[1].Sender)
}

func TestAddMessagePromptContainsProfileAndPersonalisation(t *testing.T) {
	f := newChatFixture(t)

	f.persons.Create(context.Background(), &entity.Personalisation{
		PersonalisationID: "p1",
		Answers: []entity.PersonalisationAnswer{
			{Question: "What do you use your PC for?", Answer: "Blender renders"},
		},
	})
	owner, _ := f.users.Get(context.Background(), "u1")
	owner.PersonalisationID = "p1"

	room := f.openRoom(t)

	_, err := f.uc.AddMessage(context.Background(), room.ChatroomID, &entity.AddMessageRequest{Content: "hello"})
	require.NoError(t, err)

	require.Len(t, f.llm.prompts, 1)
	prompt := f.llm.prompts[0]
	assert.Contains(t, prompt, "Lina")
	assert.Contains(t, prompt, "3D artist")
	assert.Contains(t, prompt, "Blender renders")
	assert.Contains(t, prompt, "ForgeBot:")
}

func TestAddMessageHistoryIsCapped(t *testing.T) {
	f := newChatFixture(t)
	room := f.openRoom(t)

	// Preload more history than the limit allows.
	for i := 0; i < 5; i++ {
		f.rooms.AppendMessage(context.Background(), room.ChatroomID, entity.Message{
			MessageID: string(rune('a' + i)),
			Sender:    "Lina",
			Content:   "old message " + string(rune('a'+i)),
			CreatedAt: time.Now().UTC(),
		})
	}

	_, err := f.uc.AddMessage(context.Background(), room.ChatroomID, &entity.AddMessageRequest{Content: "newest"})
	require.NoError(t, err)

	prompt := f.llm.prompts[0]
	assert.Contains(t, prompt, "newest")
	assert.Contains(t, prompt, "old message e")
	assert.NotContains(t, prompt, "old message a")
}

func TestAddMessageLLMFailure(t *testing.T) {
	f := newChatFixture(t)
	room := f.openRoom(t)
	f.llm.err = errors.New("model unavailable")

	_, err := f.uc.AddMessage(context.Background(), room.ChatroomID, &entity.AddMessageRequest{Content: "hi"})

	require.Error(t, err)
}

func TestDeleteMessage(t *testing.T) {
	f := newChatFixture(t)
	room := f.openRoom(t)

	reply, err := f.uc.AddMessage(context.Background(), room.ChatroomID, &entity.AddMessageRequest{Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteMessage(context.Background(), room.ChatroomID, reply.MessageID))

	stored, _ := f.uc.GetChatroom(context.Background(), room.ChatroomID)
	require.Len(t, stored.Messages, 1)

	err = f.uc.DeleteMessage(context.Background(), room.ChatroomID, "missing")
	require.ErrorIs(t, err, entity.ErrMessageNotFound)
}

func TestDeleteChatroomUnregistersFromUser(t *testing.T) {
	f := newChatFixture(t)
	room := f.openRoom(t)

	require.NoError(t, f.uc.DeleteChatroom(context.Background(), room.ChatroomID))

	_, err := f.uc.GetChatroom(context.Background(), room.ChatroomID)
	require.ErrorIs(t, err, entity.ErrChatroomNotFound)

	owner, _ := f.users.Get(context.Background(), "u1")
	assert.NotContains(t, owner.Chatrooms, room.ChatroomID)
}
