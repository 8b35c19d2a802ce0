package user

import (
	"context"
	"errors"
	"strings"

	"storeRating/domain"
	"storeRating/pkg/logger"
	"storeRating/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context, filter domain.UserFilter) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Delete(ctx context.Context, id uint) error
}

// RatingRepository is the slice of rating storage needed for owner details.
type RatingRepository interface {
	AverageForOwner(ctx context.Context, ownerID uint) (float64, error)
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	GenerateJWT(userID uint, role string) (string, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendWelcome(ctx context.Context, name, email string) error
}

type userService struct {
	userRepo   UserRepository
	ratingRepo RatingRepository
	tokens     TokenIssuer
	validate   *validator.Validate
	notifRepo  NotificationRepository
}

const (
	msgInvalidName     = "name must be between 20 and 60 characters"
	msgInvalidEmail    = "valid email is required"
	msgInvalidPassword = "password must be 8-16 characters with at least one uppercase letter and one special character"
	msgInvalidAddress  = "address cannot exceed 400 characters"
)

// NewUserService wires the identity and admin user operations. notifRepo may
// be nil, in which case no welcome email is sent.
func NewUserService(
	userRepo UserRepository,
	ratingRepo RatingRepository,
	tokens TokenIssuer,
	validate *validator.Validate,
	notifRepo NotificationRepository,
) *userService {
	return &userService{
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		tokens:     tokens,
		validate:   validate,
		notifRepo:  notifRepo,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) check(value any, rule, message string) error {
	if err := s.validate.Var(value, rule); err != nil {
		logger.Error("Validation failed", "detail", message, err)
		return domain.NewError(domain.ErrInvalidInput, message)
	}
	return nil
}

func (s *userService) validateNewUser(user *domain.User) error {
	user.Email = normalizeEmail(user.Email)
	user.Name = strings.TrimSpace(user.Name)

	if err := s.check(user.Name, "required,min=20,max=60", msgInvalidName); err != nil {
		return err
	}
	if err := s.check(user.Email, "required,email,max=255", msgInvalidEmail); err != nil {
		return err
	}
	if err := s.check(user.Password, "required,"+utils.PasswordRule, msgInvalidPassword); err != nil {
		return err
	}
	if err := s.check(user.Address, "max=400", msgInvalidAddress); err != nil {
		return err
	}

	if user.Role == "" {
		user.Role = domain.RoleNormalUser
	}
	if !user.Role.Valid() {
		logger.Error("Invalid role", "role", user.Role)
		return domain.ErrInvalidRole
	}

	return nil
}

// create validates, hashes and stores a new account. user.Password holds the
// plain password on entry and is cleared on return.
func (s *userService) create(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validateNewUser(user); err != nil {
		return domain.User{}, err
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists", "email", user.Email)
		return domain.User{}, domain.ErrEmailRegistered
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Error("Failed to look up email", err)
		return domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, err
	}

	newUser := domain.User{
		Name:     user.Name,
		Email:    user.Email,
		Password: string(passwordHash),
		Address:  strings.TrimSpace(user.Address),
		Role:     user.Role,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) authResult(user domain.User) (domain.AuthResult, error) {
	token, err := s.tokens.GenerateJWT(user.ID, user.Role.String())
	if err != nil {
		logger.Error("Failed to generate token", err)
		return domain.AuthResult{}, err
	}

	user.Password = ""
	return domain.AuthResult{
		User:       user,
		Token:      token,
		RedirectTo: user.Role.LandingPath(),
	}, nil
}

// Register creates an account and signs the caller in.
func (s *userService) Register(ctx context.Context, user *domain.User) (domain.AuthResult, error) {
	newUser, err := s.create(ctx, user)
	if err != nil {
		return domain.AuthResult{}, err
	}

	if s.notifRepo != nil {
		if err := s.notifRepo.SendWelcome(ctx, newUser.Name, newUser.Email); err != nil {
			logger.Warn("Failed to send welcome email", err)
		}
	}

	return s.authResult(newUser)
}

// Login answers ErrInvalidCredentials for both unknown emails and wrong passwords.
func (s *userService) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Error("Invalid user credentials", "email", email)
			return domain.AuthResult{}, domain.ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err)
		return domain.AuthResult{}, err
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("Invalid user credentials", "email", email)
		return domain.AuthResult{}, domain.ErrInvalidCredentials
	}

	return s.authResult(user)
}

func (s *userService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if err := s.check(newPassword, "required,"+utils.PasswordRule, msgInvalidPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Error("Failed to find user", err)
		return err
	}

	if !utils.CheckPassword(currentPassword, user.Password) {
		logger.Error("Current password mismatch", "user_id", userID)
		return domain.ErrWrongPassword
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(passwordHash)); err != nil {
		logger.Error("Failed to update password", err)
		return err
	}

	return nil
}

// CreateUser is the admin path: same rules as Register, no token is issued.
func (s *userService) CreateUser(ctx context.Context, user *domain.User) (domain.User, error) {
	return s.create(ctx, user)
}

func (s *userService) GetAllUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	if filter.Role != "" {
		role, ok := domain.ParseRole(filter.Role.String())
		if !ok {
			logger.Error("Invalid role filter", "role", filter.Role)
			return nil, domain.ErrInvalidRole
		}
		filter.Role = role
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to get users", err)
		return nil, err
	}

	return users, nil
}

// GetUserByID returns the user; store owners also get the pooled average of
// every rating on their stores.
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.UserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user", err)
		return domain.UserDetail{}, err
	}
	user.Password = ""

	detail := domain.UserDetail{User: user}
	if user.Role == domain.RoleStoreOwner {
		avg, err := s.ratingRepo.AverageForOwner(ctx, user.ID)
		if err != nil {
			logger.Error("Failed to average owner ratings", err)
			return domain.UserDetail{}, err
		}
		a := domain.NewAverageRating(avg)
		detail.AverageRating = &a
	}

	return detail, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user", err)
		return domain.User{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := s.check(name, "required,min=20,max=60", msgInvalidName); err != nil {
			return domain.User{}, err
		}
		user.Name = name
	}

	if patch.Address != nil {
		if err := s.check(*patch.Address, "max=400", msgInvalidAddress); err != nil {
			return domain.User{}, err
		}
		user.Address = strings.TrimSpace(*patch.Address)
	}

	if patch.Role != nil {
		role, ok := domain.ParseRole(patch.Role.String())
		if !ok {
			logger.Error("Invalid role", "role", *patch.Role)
			return domain.User{}, domain.ErrInvalidRole
		}
		user.Role = role
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if err := s.check(email, "required,email,max=255", msgInvalidEmail); err != nil {
			return domain.User{}, err
		}

		if email != user.Email {
			other, err := s.userRepo.FindByEmail(ctx, email)
			if err == nil && other.ID != user.ID {
				logger.Error("Email already in use", "email", email)
				return domain.User{}, domain.ErrEmailInUse
			}
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				logger.Error("Failed to look up email", err)
				return domain.User{}, err
			}
		}
		user.Email = email
	}

	if err := s.userRepo.Update(ctx, &user); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// DeleteUser removes a user on behalf of actorID. Admins cannot delete themselves.
func (s *userService) DeleteUser(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		logger.Error("Refusing self delete", "user_id", id)
		return domain.ErrSelfDelete
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", err)
		return err
	}

	return nil
}
