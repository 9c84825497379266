package store

import (
	"context"
	"log/slog"

	"clienthub/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin provisions the bootstrap admin account when no admin exists
// yet. Safe to run on every startup.
func SeedAdmin(ctx context.Context, s Store, name, email, password string) error {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			return nil
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.UpsertUser(ctx, &admin); err != nil {
		return err
	}

	slog.Info("seeded default admin user", "email", email)
	return nil
}
