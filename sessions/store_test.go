package sessions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/sessions"
	"github.com/shuzaifak/Property-Sync-Owner/users"
	"github.com/stretchr/testify/require"
)

const testBrowserID = "browser-1"

var testOwner = users.User{
	ID:    "u-1",
	Name:  "Olivia Owner",
	Email: "olivia@example.com",
	Role:  users.RoleOwner,
}

func TestSession_IsAuthenticated(t *testing.T) {
	require.False(t, sessions.Session{}.IsAuthenticated())
	require.False(t, sessions.Session{Token: "t"}.IsAuthenticated())

	tenant := testOwner
	tenant.Role = users.RoleTenant
	require.False(t, sessions.Session{Identity: &tenant, Token: "t"}.IsAuthenticated())

	owner := testOwner
	require.True(t, sessions.Session{Identity: &owner, Token: "t"}.IsAuthenticated())
}

func TestStore_LoginThenFreshLoad(t *testing.T) {
	ctx := context.Background()
	repo := sessions.NewInMemoryRepo()

	store := sessions.NewStore(repo, testBrowserID)
	store.Login(ctx, testOwner, "token-abc")
	require.True(t, store.IsAuthenticated())

	// simulate a restart: a new store over the same durable storage
	restarted := sessions.NewStore(repo, testBrowserID)
	require.False(t, restarted.IsAuthenticated())
	restarted.Load(ctx)

	snap := restarted.Snapshot()
	require.Equal(t, "token-abc", snap.Token)
	require.Equal(t, testOwner, *snap.Identity)
	require.True(t, restarted.IsAuthenticated())
}

func TestStore_LoadIsScopedPerBrowser(t *testing.T) {
	ctx := context.Background()
	repo := sessions.NewInMemoryRepo()
	sessions.NewStore(repo, testBrowserID).Login(ctx, testOwner, "token-abc")

	other := sessions.NewStore(repo, "browser-2")
	other.Load(ctx)
	require.True(t, other.Snapshot().Empty())
}

func TestStore_Logout(t *testing.T) {
	ctx := context.Background()
	repo := sessions.NewInMemoryRepo()
	store := sessions.NewStore(repo, testBrowserID)
	store.Login(ctx, testOwner, "token-abc")

	store.Logout(ctx)

	require.True(t, store.Snapshot().Empty())
	require.False(t, store.IsAuthenticated())
	_, err := repo.Get(ctx, testBrowserID, sessions.KeyToken)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	_, err = repo.Get(ctx, testBrowserID, sessions.KeyOwnerUser)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestStore_UpdateIdentityKeepsToken(t *testing.T) {
	ctx := context.Background()
	repo := sessions.NewInMemoryRepo()
	store := sessions.NewStore(repo, testBrowserID)
	store.Login(ctx, testOwner, "token-abc")

	updated := testOwner
	updated.Avatar = "/avatars/u-1.png"
	store.UpdateIdentity(ctx, updated)

	require.Equal(t, "token-abc", store.Snapshot().Token)
	require.Equal(t, "/avatars/u-1.png", store.Identity().Avatar)

	restarted := sessions.NewStore(repo, testBrowserID)
	restarted.Load(ctx)
	require.Equal(t, "/avatars/u-1.png", restarted.Identity().Avatar)
}

func TestStore_LoadRequiresBothKeys(t *testing.T) {
	ctx := context.Background()
	repo := sessions.NewInMemoryRepo()
	require.NoError(t, repo.Set(ctx, testBrowserID, sessions.KeyToken, "token-abc"))

	store := sessions.NewStore(repo, testBrowserID)
	store.Load(ctx)
	require.True(t, store.Snapshot().Empty())
}

func TestStore_LoadDiscardsUnreadableIdentity(t *testing.T) {
	ctx := context.Background()
	repo := sessions.NewInMemoryRepo()
	require.NoError(t, repo.Set(ctx, testBrowserID, sessions.KeyToken, "token-abc"))
	require.NoError(t, repo.Set(ctx, testBrowserID, sessions.KeyOwnerUser, "{not json"))

	store := sessions.NewStore(repo, testBrowserID)
	store.Load(ctx)
	require.True(t, store.Snapshot().Empty())
}

func TestStore_LoadDropsExpiredJWT(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	sign := func(exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-1", "exp": exp.Unix()})
		signed, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)
		return signed
	}

	t.Run("expired", func(t *testing.T) {
		repo := sessions.NewInMemoryRepo()
		sessions.NewStore(repo, testBrowserID).Login(ctx, testOwner, sign(now.Add(-time.Minute)))

		store := sessions.NewStore(repo, testBrowserID).WithClock(func() time.Time { return now })
		store.Load(ctx)
		require.False(t, store.IsAuthenticated())
	})

	t.Run("still valid", func(t *testing.T) {
		repo := sessions.NewInMemoryRepo()
		sessions.NewStore(repo, testBrowserID).Login(ctx, testOwner, sign(now.Add(time.Hour)))

		store := sessions.NewStore(repo, testBrowserID).WithClock(func() time.Time { return now })
		store.Load(ctx)
		require.True(t, store.IsAuthenticated())

		tok, err := store.Token()
		require.NoError(t, err)
		require.Equal(t, now.Add(time.Hour).Unix(), tok.Expiry.Unix())
	})
}

func TestStore_Token(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(sessions.NewInMemoryRepo(), testBrowserID)

	_, err := store.Token()
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	store.Login(ctx, testOwner, "opaque-token")
	tok, err := store.Token()
	require.NoError(t, err)
	require.Equal(t, "opaque-token", tok.AccessToken)
	require.Equal(t, "Bearer", tok.TokenType)
	require.True(t, tok.Valid())
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, string, string) (string, error) {
	return "", errors.New("disk on fire")
}
func (failingRepo) Set(context.Context, string, string, string) error { return errors.New("disk on fire") }
func (failingRepo) Delete(context.Context, string, ...string) error  { return errors.New("disk on fire") }
func (failingRepo) Close() error                                     { return nil }

func TestStore_StorageFailuresAreNotFatal(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewStore(failingRepo{}, testBrowserID)

	store.Load(ctx)
	require.True(t, store.Snapshot().Empty())

	store.Login(ctx, testOwner, "token-abc")
	require.True(t, store.IsAuthenticated())

	store.Logout(ctx)
	require.False(t, store.IsAuthenticated())
}
