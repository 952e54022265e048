package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/client/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validSession() *backend.Session {
	return &backend.Session{
		UserID:       "user-123",
		Email:        "user@example.com",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	backendMock := &backend.BackendMock{
		SignUpFunc: func(ctx context.Context, email, password string) (*backend.Session, error) {
			assert.Equal(t, "user@example.com", email)
			return validSession(), nil
		},
	}
	var saved *backend.Session
	storeMock := &storage.SessionStorageMock{
		SaveSessionFunc: func(ctx context.Context, session *backend.Session) error {
			saved = session
			return nil
		},
	}

	svc := NewService(backendMock, storeMock, testLogger())

	session, err := svc.Register(ctx, "user@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-123", session.UserID)
	require.NotNil(t, saved)
	assert.Equal(t, session, saved)
}

func TestService_Register_Validation(t *testing.T) {
	svc := NewService(&backend.BackendMock{}, &storage.SessionStorageMock{}, testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "password123")
	assert.Error(t, err)

	_, err = svc.Register(ctx, "user@example.com", "short")
	assert.Error(t, err)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	backendMock := &backend.BackendMock{
		SignInFunc: func(ctx context.Context, email, password string) (*backend.Session, error) {
			return nil, backend.ErrInvalidCredentials
		},
	}
	svc := NewService(backendMock, &storage.SessionStorageMock{}, testLogger())

	_, err := svc.Login(context.Background(), "user@example.com", "wrongpass")
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.ErrInvalidCredentials)
}

func TestService_Logout(t *testing.T) {
	t.Run("deletes local session even if server fails", func(t *testing.T) {
		backendMock := &backend.BackendMock{
			SignOutFunc: func(ctx context.Context, session *backend.Session) error {
				return errors.New("server unavailable")
			},
		}
		deleted := false
		storeMock := &storage.SessionStorageMock{
			GetSessionFunc: func(ctx context.Context) (*backend.Session, error) {
				return validSession(), nil
			},
			DeleteSessionFunc: func(ctx context.Context) error {
				deleted = true
				return nil
			},
		}

		svc := NewService(backendMock, storeMock, testLogger())

		err := svc.Logout(context.Background())
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("no session", func(t *testing.T) {
		storeMock := &storage.SessionStorageMock{
			GetSessionFunc: func(ctx context.Context) (*backend.Session, error) {
				return nil, storage.ErrSessionNotFound
			},
		}

		svc := NewService(&backend.BackendMock{}, storeMock, testLogger())

		err := svc.Logout(context.Background())
		assert.ErrorIs(t, err, backend.ErrNoSession)
	})
}

func TestService_Current(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh session returned as is", func(t *testing.T) {
		session := validSession()
		storeMock := &storage.SessionStorageMock{
			GetSessionFunc: func(ctx context.Context) (*backend.Session, error) {
				return session, nil
			},
		}
		backendMock := &backend.BackendMock{}

		svc := NewService(backendMock, storeMock, testLogger())

		got, err := svc.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, session, got)
		assert.Empty(t, backendMock.RefreshCalls())
	})

	t.Run("expired session is refreshed and saved", func(t *testing.T) {
		expired := validSession()
		expired.ExpiresAt = time.Now().Add(-time.Minute)
		refreshed := validSession()
		refreshed.AccessToken = "new-access-token"

		var saved *backend.Session
		storeMock := &storage.SessionStorageMock{
			GetSessionFunc: func(ctx context.Context) (*backend.Session, error) {
				return expired, nil
			},
			SaveSessionFunc: func(ctx context.Context, session *backend.Session) error {
				saved = session
				return nil
			},
		}
		backendMock := &backend.BackendMock{
			RefreshFunc: func(ctx context.Context, refreshToken string) (*backend.Session, error) {
				assert.Equal(t, "refresh-token", refreshToken)
				return refreshed, nil
			},
		}

		svc := NewService(backendMock, storeMock, testLogger())

		got, err := svc.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, "new-access-token", got.AccessToken)
		assert.Equal(t, refreshed, saved)
	})

	t.Run("no stored session", func(t *testing.T) {
		storeMock := &storage.SessionStorageMock{
			GetSessionFunc: func(ctx context.Context) (*backend.Session, error) {
				return nil, storage.ErrSessionNotFound
			},
		}

		svc := NewService(&backend.BackendMock{}, storeMock, testLogger())

		_, err := svc.Current(ctx)
		assert.ErrorIs(t, err, backend.ErrNoSession)
	})

	t.Run("local session without expiry never refreshed", func(t *testing.T) {
		local := &backend.Session{
			UserID:      "user-123",
			Email:       "user@example.com",
			AccessToken: "local-opaque-token",
		}
		storeMock := &storage.SessionStorageMock{
			GetSessionFunc: func(ctx context.Context) (*backend.Session, error) {
				return local, nil
			},
		}
		backendMock := &backend.BackendMock{}

		svc := NewService(backendMock, storeMock, testLogger())

		got, err := svc.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, local, got)
		assert.Empty(t, backendMock.RefreshCalls())
	})
}

func TestService_IsAuthenticated(t *testing.T) {
	ctx := context.Background()

	storeMock := &storage.SessionStorageMock{
		GetSessionFunc: func(ctx context.Context) (*backend.Session, error) {
			return nil, storage.ErrSessionNotFound
		},
	}
	svc := NewService(&backend.BackendMock{}, storeMock, testLogger())

	ok, err := svc.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	storeMock.GetSessionFunc = func(ctx context.Context) (*backend.Session, error) {
		return validSession(), nil
	}

	ok, err = svc.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	got, ok := tokenExpiry(signed)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = tokenExpiry("local-opaque-token")
	assert.False(t, ok)
}

func TestFriendlyMessage(t *testing.T) {
	assert.Equal(t, "Invalid email or password",
		FriendlyMessage(backend.ErrInvalidCredentials))
	assert.Equal(t, "This email is already registered, try logging in",
		FriendlyMessage(backend.ErrUserExists))
	assert.Equal(t, "Not logged in", FriendlyMessage(backend.ErrNoSession))
	assert.Equal(t, "server error (500): boom",
		FriendlyMessage(errors.New("server error (500): boom")))
}
