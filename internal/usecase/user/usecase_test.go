package user

import (
	"context"
	"testing"

	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memUsers struct {
	users     map[string]*entity.User
	updateErr error
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
	if m.updateErr != nil {
		return m.updateErr
	}
	user, ok := m.users[id]
	if !ok {
		return entity.ErrUserNotFound
	}
	if name, ok := partial["name"].(string); ok {
		user.Name = name
	}
	if pid, ok := partial["personalisation_id"].(string); ok {
		user.PersonalisationID = pid
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
	return nil
}

func (m *memUsers) RemoveChatroom(ctx context.Context, userID, chatroomID string) error {
	return nil
}

func (m *memUsers) FindByChatroom(ctx context.Context, chatroomID string) ([]*entity.User, error) {
	return nil, nil
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

func newTestUsecase() (*UserUsecase, *memUsers, *memPersonalisations) {
	users := newMemUsers()
	persons := newMemPersonalisations()
	return NewUsecase(users, persons, zap.NewNop()), users, persons
}

func TestCreateUserRequiresName(t *testing.T) {
	uc, _, _ := newTestUsecase()

	_, err := uc.CreateUser(context.Background(), &entity.CreateUserRequest{})

	require.ErrorIs(t, err, entity.ErrMissingField)
}

func TestCreateUserInitialisesChatrooms(t *testing.T) {
	uc, _, _ := newTestUsecase()

	user, err := uc.CreateUser(context.Background(), &entity.CreateUserRequest{Name: "Lina", Age: 29})

	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.NotNil(t, user.Chatrooms)
	assert.Empty(t, user.Chatrooms)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUpdateUserAppliesOnlyGivenFields(t *testing.T) {
	uc, _, _ := newTestUsecase()

	created, err := uc.CreateUser(context.Background(), &entity.CreateUserRequest{Name: "Lina", Occupation: "3D artist"})
	require.NoError(t, err)

	newName := "Lina K"
	updated, err := uc.UpdateUser(context.Background(), created.UserID, &entity.UpdateUserRequest{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Lina K", updated.Name)
	assert.Equal(t, "3D artist", updated.Occupation)
}

func TestCreatePersonalisationLinksUser(t *testing.T) {
	uc, users, _ := newTestUsecase()

	created, err := uc.CreateUser(context.Background(), &entity.CreateUserRequest{Name: "Lina"})
	require.NoError(t, err)

	p, err := uc.CreatePersonalisation(context.Background(), created.UserID, &entity.CreatePersonalisationRequest{
		Answers: []entity.PersonalisationAnswer{{Question: "Usage?", Answer: "Rendering"}},
	})

	require.NoError(t, err)
	owner, _ := users.Get(context.Background(), created.UserID)
	assert.Equal(t, p.PersonalisationID, owner.PersonalisationID)
}

func TestCreatePersonalisationRollsBackOnLinkFailure(t *testing.T) {
	uc, users, persons := newTestUsecase()
	users.updateErr = entity.ErrUserNotFound

	_, err := uc.CreatePersonalisation(context.Background(), "ghost", &entity.CreatePersonalisationRequest{
		Answers: []entity.PersonalisationAnswer{{Question: "Usage?", Answer: "Rendering"}},
	})

	require.Error(t, err)
	assert.Empty(t, persons.items, "orphaned personalisation must be removed")
}

func TestCreatePersonalisationRequiresAnswers(t *testing.T) {
	uc, _, _ := newTestUsecase()

	_, err := uc.CreatePersonalisation(context.Background(), "", &entity.CreatePersonalisationRequest{})

	require.ErrorIs(t, err, entity.ErrMissingField)
}

func TestDeleteUser(t *testing.T) {
	uc, _, _ := newTestUsecase()

	created, err := uc.CreateUser(context.Background(), &entity.CreateUserRequest{Name: "Lina"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteUser(context.Background(), created.UserID))

	_, err = uc.GetUser(context.Background(), created.UserID)
	require.ErrorIs(t, err, entity.ErrUserNotFound)
}
