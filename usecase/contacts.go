package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"dealflow/model"
	"dealflow/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ContactBookStore extends ContactStore with the listing and mutation
// calls the address book needs. Satisfied by repository.ContactsRepo.
type ContactBookStore interface {
	ContactStore
	CreateContact(ctx context.Context, contact *model.Contact) error
	GetUserContacts(ctx context.Context, userID string) ([]*model.Contact, error)
	UpdateContact(ctx context.Context, contactID string, userID string, updates bson.M) error
	DeleteContact(ctx context.Context, contactID string, userID string) error
}

type ContactService struct {
	Contacts ContactBookStore
}

// CreateContact validates and persists an address-book entry.
func (s *ContactService) CreateContact(ctx context.Context, contact *model.Contact) error {
	if contact.UserID == "" {
		return errors.New("user ID is required")
	}
	contact.Name = strings.TrimSpace(contact.Name)
	if contact.Name == "" {
		return errors.New("contact name is required")
	}
	if contact.SaleAmount < 0 || contact.Commission < 0 {
		return errors.New("sale amount and commission cannot be negative")
	}

	now := time.Now()
	contact.ContactID = uuid.New().String()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	if err := s.Contacts.CreateContact(ctx, contact); err != nil {
		return err
	}
	utils.TrackCRMOperation("contacts", "create")
	return nil
}

// SearchContacts lists the user's contacts narrowed by a free-text
// query over name, company and email.
func (s *ContactService) SearchContacts(ctx context.Context, userID string, query string) ([]*model.Contact, error) {
	contacts, err := s.Contacts.GetUserContacts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FilterContacts(contacts, query), nil
}

// UpdateContact applies a partial update to an address-book entry.
func (s *ContactService) UpdateContact(ctx context.Context, contactID string, userID string, updates bson.M) error {
	if err := s.Contacts.UpdateContact(ctx, contactID, userID, updates); err != nil {
		return err
	}
	utils.TrackCRMOperation("contacts", "update")
	return nil
}

// DeleteContact removes a contact owned by the user.
func (s *ContactService) DeleteContact(ctx context.Context, contactID string, userID string) error {
	if err := s.Contacts.DeleteContact(ctx, contactID, userID); err != nil {
		return err
	}
	utils.TrackCRMOperation("contacts", "delete")
	return nil
}
