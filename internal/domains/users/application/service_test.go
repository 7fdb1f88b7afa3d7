package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/beandock/coffeeshop-api/internal/domains/users/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/users/ports"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	clone := *user
	if clone.ID == 0 {
		clone.ID = f.nextID
		f.nextID++
	}
	f.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context, _ int, _ int) ([]*domain.User, error) {
	var list []*domain.User
	for _, u := range f.users {
		clone := *u
		list = append(list, &clone)
	}
	return list, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeSessionStore struct {
	sessions map[string]int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]int64{}}
}

func (f *fakeSessionStore) Save(_ context.Context, token string, userID int64, _ time.Duration) error {
	f.sessions[token] = userID
	return nil
}

func (f *fakeSessionStore) Resolve(_ context.Context, token string) (int64, error) {
	if id, ok := f.sessions[token]; ok {
		return id, nil
	}
	return 0, ports.ErrSessionNotFound
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionStore) PurgeExpired(_ context.Context) (int64, error) { return 0, nil }

func newTestService() (*Service, *fakeUserRepo, *fakeSessionStore) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions, WithBcryptCost(bcrypt.MinCost))
	return svc, repo, sessions
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:    "anna@example.com",
		Username: "anna",
		Password: "sup3rsecret",
	}
}

func TestRegister_CreatesActiveUser(t *testing.T) {
	svc, _, _ := newTestService()

	user, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.True(t, user.IsActive)
	require.False(t, user.IsAdmin)
	require.NotEmpty(t, user.HashedPassword)
}

func TestRegister_UniquenessConflicts(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	input := registerInput()
	input.Username = "different"
	_, err = svc.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, ports.ErrEmailTaken)

	input = registerInput()
	input.Email = "other@example.com"
	_, err = svc.Register(context.Background(), input)
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, ports.ErrUsernameTaken)
}

func TestLogin_IssuesSession(t *testing.T) {
	svc, _, sessions := newTestService()
	registered, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "anna@example.com", "sup3rsecret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, registered.ID, user.ID)
	require.Equal(t, registered.ID, sessions.sessions[token])

	resolved, err := svc.GetByToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, resolved.ID)
}

func TestLogin_Failures(t *testing.T) {
	svc, repo, _ := newTestService()
	user, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "anna@example.com", "wrong")
	require.ErrorIs(t, err, ErrAuthentication)

	_, _, err = svc.Login(context.Background(), "ghost@example.com", "sup3rsecret")
	require.ErrorIs(t, err, ErrAuthentication)

	inactive := *user
	inactive.IsActive = false
	_, err = repo.Save(context.Background(), &inactive)
	require.NoError(t, err)
	_, _, err = svc.Login(context.Background(), "anna@example.com", "sup3rsecret")
	require.ErrorIs(t, err, ports.ErrInactiveUser)
}

func TestLogout_RevokesSession(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "anna@example.com", "sup3rsecret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	_, err = svc.GetByToken(context.Background(), token)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestUpdateUser_RehashesPassword(t *testing.T) {
	svc, _, _ := newTestService()
	user, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	newPassword := "an0thersecret"
	updated, err := svc.UpdateUser(context.Background(), user.ID, ports.UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)
	require.True(t, updated.CheckPassword(newPassword))
	require.False(t, updated.CheckPassword("sup3rsecret"))

	weak := "ab"
	_, err = svc.UpdateUser(context.Background(), user.ID, ports.UpdateUserInput{Password: &weak})
	require.ErrorIs(t, err, ErrInvalidInput)
}
