package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"storeRating/domain"
	"storeRating/pkg/logger"

	"gopkg.in/yaml.v3"
)

// File is the seed document read by the seeder CLI.
type File struct {
	Users  []UserEntry  `yaml:"users"`
	Stores []StoreEntry `yaml:"stores"`
}

type UserEntry struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Address  string `yaml:"address"`
	Role     string `yaml:"role"`
}

type StoreEntry struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Address    string `yaml:"address"`
	OwnerEmail string `yaml:"owner_email"`
}

// Report summarises one seeding run.
type Report struct {
	UsersCreated  int
	UsersSkipped  int
	StoresCreated int
	StoresSkipped int
}

// LoadFile reads and parses a seed document.
func LoadFile(path string) (File, error) {
	var f File

	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read seed file: %w", err)
	}

	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse seed file: %w", err)
	}

	return f, nil
}

// UserService creates accounts with the same rules as the admin API.
type UserService interface {
	CreateUser(ctx context.Context, user *domain.User) (domain.User, error)
}

// StoreService creates stores with the same rules as the admin API.
type StoreService interface {
	CreateStore(ctx context.Context, store *domain.Store) (domain.Store, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type seedService struct {
	users    UserService
	stores   StoreService
	userRepo UserRepository
}

func NewSeedService(users UserService, stores StoreService, userRepo UserRepository) *seedService {
	return &seedService{
		users:    users,
		stores:   stores,
		userRepo: userRepo,
	}
}

// Apply creates every user and store in f. Entries whose email already exists
// are skipped, so a file can be applied repeatedly.
func (s *seedService) Apply(ctx context.Context, f File) (Report, error) {
	var report Report

	for _, entry := range f.Users {
		_, err := s.users.CreateUser(ctx, &domain.User{
			Name:     entry.Name,
			Email:    entry.Email,
			Password: entry.Password,
			Address:  entry.Address,
			Role:     domain.Role(entry.Role),
		})
		if errors.Is(err, domain.ErrConflict) {
			logger.Info("Seed user exists, skipping", "email", entry.Email)
			report.UsersSkipped++
			continue
		}
		if err != nil {
			return report, fmt.Errorf("seed user %s: %w", entry.Email, err)
		}
		report.UsersCreated++
	}

	for _, entry := range f.Stores {
		store := domain.Store{
			Name:    entry.Name,
			Email:   entry.Email,
			Address: entry.Address,
		}

		if ownerEmail := strings.ToLower(strings.TrimSpace(entry.OwnerEmail)); ownerEmail != "" {
			owner, err := s.userRepo.FindByEmail(ctx, ownerEmail)
			if err != nil {
				return report, fmt.Errorf("seed store %s owner %s: %w", entry.Email, entry.OwnerEmail, err)
			}
			store.OwnerID = &owner.ID
		}

		_, err := s.stores.CreateStore(ctx, &store)
		if errors.Is(err, domain.ErrConflict) {
			logger.Info("Seed store exists, skipping", "email", entry.Email)
			report.StoresSkipped++
			continue
		}
		if err != nil {
			return report, fmt.Errorf("seed store %s: %w", entry.Email, err)
		}
		report.StoresCreated++
	}

	return report, nil
}
