package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finance-records/backend/internal/application/adapter"
	domainerror "github.com/finance-records/backend/internal/domain/error"
	"github.com/finance-records/backend/internal/integration/adapters"
	"github.com/finance-records/backend/internal/integration/memory"
)

type fixture struct {
	users    adapter.UserRepository
	password adapter.PasswordService
	tokens   adapter.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	return &fixture{
		users:    memory.NewUserRepository(store),
		password: adapters.NewPasswordService(),
		tokens: adapters.NewTokenService(
			"test-secret", 15*time.Minute, 7*24*time.Hour,
			memory.NewTokenRepository(store),
		),
	}
}

func (f *fixture) register(t *testing.T, email string) *RegisterUserOutput {
	t.Helper()

	out, err := NewRegisterUserUseCase(f.users, f.password, f.tokens).Execute(context.Background(),
		RegisterUserInput{Email: email, Name: "Owner", Password: "long enough"})
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	return out
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and issues a token pair", func(t *testing.T) {
		f := newFixture(t)
		out := f.register(t, "owner@example.com")

		if out.AccessToken == "" || out.RefreshToken == "" {
			t.Fatal("expected both tokens")
		}

		claims, err := f.tokens.ValidateAccessToken(ctx, out.AccessToken)
		if err != nil {
			t.Fatalf("access token does not validate: %v", err)
		}
		if claims.UserID != out.User.ID || claims.Email != "owner@example.com" {
			t.Errorf("unexpected claims: %+v", claims)
		}
		if out.User.PasswordHash == "long enough" {
			t.Error("password must not be stored in the clear")
		}
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewRegisterUserUseCase(f.users, f.password, f.tokens).Execute(ctx,
			RegisterUserInput{Email: "not-an-email", Name: "Owner", Password: "long enough"})
		if !errors.Is(err, domainerror.ErrInvalidEmail) {
			t.Errorf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("rejects a short password", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewRegisterUserUseCase(f.users, f.password, f.tokens).Execute(ctx,
			RegisterUserInput{Email: "owner@example.com", Name: "Owner", Password: "short"})
		if !errors.Is(err, domainerror.ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "owner@example.com")

		_, err := NewRegisterUserUseCase(f.users, f.password, f.tokens).Execute(ctx,
			RegisterUserInput{Email: "owner@example.com", Name: "Owner", Password: "long enough"})
		if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()

	t.Run("logs in with the right password", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "owner@example.com")

		out, err := NewLoginUserUseCase(f.users, f.password, f.tokens).Execute(ctx,
			LoginUserInput{Email: "owner@example.com", Password: "long enough"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.ID != registered.User.ID {
			t.Error("logged in as the wrong user")
		}
		if _, err := f.tokens.ValidateRefreshToken(ctx, out.RefreshToken); err != nil {
			t.Errorf("refresh token does not validate: %v", err)
		}
	})

	t.Run("wrong password and unknown email fail alike", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "owner@example.com")

		uc := NewLoginUserUseCase(f.users, f.password, f.tokens)
		_, wrongPassword := uc.Execute(ctx,
			LoginUserInput{Email: "owner@example.com", Password: "wrong password"})
		_, unknownEmail := uc.Execute(ctx,
			LoginUserInput{Email: "nobody@example.com", Password: "long enough"})

		if !errors.Is(wrongPassword, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", wrongPassword)
		}
		if !errors.Is(unknownEmail, domainerror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", unknownEmail)
		}
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the pair and revokes the old refresh token", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "owner@example.com")

		uc := NewRefreshTokenUseCase(f.tokens)
		out, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken == "" || out.RefreshToken == "" {
			t.Fatal("expected a full new pair")
		}

		if _, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken}); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected the spent token to be rejected, got %v", err)
		}
		if _, err := uc.Execute(ctx, RefreshTokenInput{RefreshToken: out.RefreshToken}); err != nil {
			t.Errorf("the fresh token must still work: %v", err)
		}
	})

	t.Run("rejects an access token", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "owner@example.com")

		_, err := NewRefreshTokenUseCase(f.tokens).Execute(ctx,
			RefreshTokenInput{RefreshToken: registered.AccessToken})
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewRefreshTokenUseCase(f.tokens).Execute(ctx,
			RefreshTokenInput{RefreshToken: "not a jwt"})
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestLogoutUser(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the refresh token", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "owner@example.com")

		if _, err := NewLogoutUserUseCase(f.tokens).Execute(ctx,
			LogoutUserInput{RefreshToken: registered.RefreshToken}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := f.tokens.ValidateRefreshToken(ctx, registered.RefreshToken); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected the revoked token to be rejected, got %v", err)
		}
	})

	t.Run("logging out twice succeeds", func(t *testing.T) {
		f := newFixture(t)
		registered := f.register(t, "owner@example.com")

		uc := NewLogoutUserUseCase(f.tokens)
		input := LogoutUserInput{RefreshToken: registered.RefreshToken}
		if _, err := uc.Execute(ctx, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := uc.Execute(ctx, input); err != nil {
			t.Errorf("logout must be idempotent: %v", err)
		}
	})
}
