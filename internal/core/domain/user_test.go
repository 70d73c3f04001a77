package domain

import (
	"testing"
	"time"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("Should create user with normalized email", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("u-1", "  Jane.Doe@Example.COM  ")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if user.Email != "jane.doe@example.com" {
			t.Errorf("Expected normalized email, got %s", user.Email)
		}
		if user.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("Should fail with invalid email", func(t *testing.T) {
		t.Parallel()

		if _, err := NewUser("u-1", "not-an-email"); err != ErrInvalidEmail {
			t.Errorf("Expected ErrInvalidEmail, got %v", err)
		}
	})
}

func TestUserPassword(t *testing.T) {
	t.Parallel()

	t.Run("Should hash password and update timestamp", func(t *testing.T) {
		t.Parallel()

		user, _ := NewUser("u-1", "jane@example.com")
		oldUpdatedAt := user.UpdatedAt

		time.Sleep(1 * time.Millisecond)

		if err := user.SetPassword("superSecret123"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if user.PasswordHash == "superSecret123" || user.PasswordHash == "" {
			t.Error("Password should be stored as a non-empty hash")
		}
		if !user.UpdatedAt.After(oldUpdatedAt) {
			t.Error("UpdatedAt should move forward after setting password")
		}
	})

	t.Run("Should reject short passwords", func(t *testing.T) {
		t.Parallel()

		user, _ := NewUser("u-1", "jane@example.com")
		if err := user.SetPassword("short"); err != ErrPasswordTooShort {
			t.Errorf("Expected ErrPasswordTooShort, got %v", err)
		}
	})

	t.Run("CheckPassword should accept the right password only", func(t *testing.T) {
		t.Parallel()

		user, _ := NewUser("u-1", "jane@example.com")
		_ = user.SetPassword("correctHorse1")

		if err := user.CheckPassword("correctHorse1"); err != nil {
			t.Errorf("Expected password to match, got %v", err)
		}
		if err := user.CheckPassword("wrongPassword"); err == nil {
			t.Error("Expected error for wrong password, got nil")
		}
	})
}
