package user

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stephenombuya/Velixa/internal/config"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stephenombuya/Velixa/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	users  map[string]User
	writes int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: make(map[string]User)}
}

func (m *memoryRepository) FindAll(context.Context) ([]User, error) {
	var out []User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.ErrRecordNotFound
	}
	return &u, nil
}

func (m *memoryRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	return m.match(func(u User) bool { return u.Username == username })
}

func (m *memoryRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	return m.match(func(u User) bool { return u.Email == email })
}

func (m *memoryRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.FindByUsername(ctx, username)
	return err == nil, nil
}

func (m *memoryRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

func (m *memoryRepository) Create(_ context.Context, user *User) error {
	m.users[user.ID] = *user
	m.writes++
	return nil
}

func (m *memoryRepository) Save(_ context.Context, user *User) error {
	m.users[user.ID] = *user
	m.writes++
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return apperror.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryRepository) match(keep func(User) bool) (*User, error) {
	for _, u := range m.users {
		if keep(u) {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.ErrRecordNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "velixa-test"},
		JWT:      config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", AccessTokenExpiry: time.Hour},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func newTestService() (*Service, *memoryRepository) {
	repo := newMemoryRepository()
	logger, _ := test.NewNullLogger()
	return NewService(repo, testConfig(), logger), repo
}

func register(t *testing.T, svc *Service) *User {
	t.Helper()
	user, err := svc.Register(context.Background(), &RegisterRequest{
		Username:  "alice",
		Email:     "Alice@Example.com",
		Password:  "wonderland1",
		FirstName: "Alice",
		LastName:  "Liddell",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterHashesPasswordAndAssignsRole(t *testing.T) {
	svc, repo := newTestService()

	user := register(t, svc)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, []string{RoleUser}, user.Roles)
	assert.NotEqual(t, "wonderland1", repo.users[user.ID].Password)
	assert.Equal(t, "Alice Liddell", user.GetDisplayName())
}

func TestRegisterDuplicatePerformsNoWrite(t *testing.T) {
	svc, repo := newTestService()
	register(t, svc)
	writes := repo.writes

	tests := []struct {
		name    string
		req     RegisterRequest
		message string
	}{
		{"username", RegisterRequest{Username: "alice", Email: "other@example.com", Password: "wonderland1"}, "Username is already taken"},
		{"email", RegisterRequest{Username: "bob", Email: "ALICE@example.com", Password: "wonderland1"}, "Email is already in use"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tt.req)
			require.Error(t, err)
			assert.True(t, apperror.IsInvalidArgument(err))
			assert.Equal(t, tt.message, apperror.MessageOf(err))
		})
	}
	assert.Equal(t, writes, repo.writes)
	assert.Len(t, repo.users, 1)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Register(context.Background(), &RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "short"})

	assert.True(t, apperror.IsInvalidArgument(err))
	assert.Zero(t, repo.writes)
}

func TestLoginWithUsernameOrEmail(t *testing.T) {
	svc, repo := newTestService()
	user := register(t, svc)
	ctx := context.Background()

	for _, login := range []string{"alice", "alice@example.com"} {
		resp, err := svc.Login(ctx, &LoginRequest{Login: login, Password: "wonderland1"})
		require.NoError(t, err, login)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(3600), resp.ExpiresIn)

		claims, err := auth.NewJWTManager(testConfig()).ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.True(t, claims.HasRole(RoleUser))
	}
	assert.NotNil(t, repo.users[user.ID].LastLoginAt)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc)
	ctx := context.Background()

	_, err := svc.Login(ctx, &LoginRequest{Login: "alice", Password: "wrongpass1"})
	assert.Equal(t, "invalid username or password", apperror.MessageOf(err))

	_, err = svc.Login(ctx, &LoginRequest{Login: "nobody", Password: "wonderland1"})
	assert.Equal(t, "invalid username or password", apperror.MessageOf(err))
}

func TestUpdateKeepsEmailUnique(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc)
	_, err := svc.Register(ctx, &RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "builder123"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice.ID, &UpdateRequest{Email: "bob@example.com"})
	assert.True(t, apperror.IsInvalidArgument(err))

	updated, err := svc.Update(ctx, alice.ID, &UpdateRequest{FirstName: "Al", Email: "al@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Al", updated.FirstName)
	assert.Equal(t, "al@example.com", updated.Email)
}

func TestGetAndDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	user := register(t, svc)

	found, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, user.ID))
	_, err = svc.GetByID(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, "User not found with id: "+user.ID, apperror.MessageOf(err))
	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, user.ID)))
}
