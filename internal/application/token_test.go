package application

import (
	"errors"
	"testing"
	"time"

	"github.com/devhearts/devmentor/internal/persistence"
	"github.com/devhearts/devmentor/internal/testfixtures"
)

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenManager("", time.Hour, nil); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	t.Parallel()

	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	tm, err := NewTokenManager("secret", time.Hour, clock.NowFunc())
	if err != nil {
		t.Fatalf("NewTokenManager returned error: %v", err)
	}

	user := persistence.User{ID: "u-1", Email: "ada@example.com", Role: persistence.RoleMentor}
	token, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "ada@example.com" || claims.Role != "mentor" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if !claims.ExpiresAt.Time.Equal(testfixtures.ReferenceTime().Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", claims.ExpiresAt.Time)
	}
}

func TestTokenManager_ParseRejects(t *testing.T) {
	t.Parallel()

	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	tm, _ := NewTokenManager("secret", time.Minute, clock.NowFunc())
	other, _ := NewTokenManager("other-secret", time.Minute, clock.NowFunc())

	token, err := tm.Issue(persistence.User{ID: "u-1"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	forged, _ := other.Issue(persistence.User{ID: "u-1"})

	t.Run("empty token", func(t *testing.T) {
		if _, err := tm.Parse(""); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := tm.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if _, err := tm.Parse(forged); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		clock.Advance(2 * time.Minute)
		if _, err := tm.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestTokenManager_IssueRequiresUserID(t *testing.T) {
	t.Parallel()

	tm, _ := NewTokenManager("secret", time.Hour, nil)
	if _, err := tm.Issue(persistence.User{}); err == nil {
		t.Fatalf("expected error for user without id")
	}
}
