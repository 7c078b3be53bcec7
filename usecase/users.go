package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealflow/model"
	"dealflow/repository"
	"dealflow/services"
	"dealflow/utils"
)

var (
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrEmailChangeCooldown = errors.New("email can only be changed every 14 days")
	ErrSamePassword        = errors.New("new password must be different from the current one")
)

// UserService handles account lifecycle: registration, credential
// checks, profile changes and full account deletion with its CRM data.
type UserService struct {
	UsersRepo *repository.UserRepo

	// CRM repositories, used only by the account-deletion cascade.
	LeadsRepo     *repository.LeadsRepo
	DealsRepo     *repository.DealsRepo
	TasksRepo     *repository.TasksRepo
	ContactsRepo  *repository.ContactsRepo
	ShipmentsRepo *repository.ShipmentsRepo
	SessionsRepo  *repository.SessionRepo
}

const emailChangeCooldown = 14 * 24 * time.Hour

// CreateUser registers a new account. The incoming password is plain
// text and gets hashed here; the stored record never keeps it.
func (s *UserService) CreateUser(ctx context.Context, user *model.User) error {
	existing, err := s.UsersRepo.FindUserByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.UserID = utils.GenerateUserID()
	user.Password = hashed
	user.CreatedAt = time.Now()
	user.IsActive = true

	if _, err := s.UsersRepo.AddUser(ctx, user); err != nil {
		return err
	}
	return nil
}

// Authenticate verifies a username/password pair and returns the user
// on success. 2FA verification, when enabled, is the caller's job.
func (s *UserService) Authenticate(ctx context.Context, username string, password string) (*model.User, error) {
	user, err := s.UsersRepo.FindUserByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	ok, err := services.VerifyPassword(user.Password, password)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ChangeEmail updates the account email, enforcing the change cooldown.
func (s *UserService) ChangeEmail(ctx context.Context, userID string, newEmail string) error {
	user, err := s.UsersRepo.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	if user.Email == newEmail {
		return errors.New("new email is the same as the current one")
	}
	if !user.LastEmailChange.IsZero() && time.Since(user.LastEmailChange) < emailChangeCooldown {
		return ErrEmailChangeCooldown
	}

	updated, err := s.UsersRepo.UpdateUserEmail(ctx, userID, newEmail)
	if err != nil {
		return err
	}
	if updated == 0 {
		return errors.New("email was not updated")
	}
	return nil
}

// ChangePassword verifies the current password and stores the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error {
	user, err := s.UsersRepo.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	ok, err := services.VerifyPassword(user.Password, oldPassword)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}
	if oldPassword == newPassword {
		return ErrSamePassword
	}
	if !utils.ValidatePassword(newPassword) {
		return errors.New("new password does not meet the password requirements")
	}

	hashed, err := services.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	updated, err := s.UsersRepo.UpdateUserPassword(ctx, userID, hashed)
	if err != nil {
		return err
	}
	if updated == 0 {
		return errors.New("password was not updated")
	}
	return nil
}

// DeleteAccount removes the user and every record they own: leads,
// deals, tasks, contacts, shipments and sessions. CRM data goes first
// so a failed cascade leaves the account logins intact and retryable.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.LeadsRepo.DeleteUserLeads(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete leads: %w", err)
	}
	if err := s.DealsRepo.DeleteUserDeals(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete deals: %w", err)
	}
	if err := s.TasksRepo.DeleteUserTasks(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}
	if err := s.ContactsRepo.DeleteUserContacts(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete contacts: %w", err)
	}
	if err := s.ShipmentsRepo.DeleteUserShipments(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete shipments: %w", err)
	}
	if err := s.SessionsRepo.DeleteUserSessions(userID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	deleted, err := s.UsersRepo.DeleteUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errors.New("user not found")
	}
	utils.TrackCRMOperation("users", "delete_account")
	return nil
}
