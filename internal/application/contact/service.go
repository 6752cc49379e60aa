package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/go-contacts-api/internal/domain"
)

// Upcoming birthdays are reported for the next 7 days.
const birthdayWindow = 7 * 24 * time.Hour

type Service interface {
	Create(ctx context.Context, userID int64, req domain.CreateContactRequest) (*domain.Contact, error)
	List(ctx context.Context, userID int64, skip, limit int) ([]domain.Contact, error)
	Get(ctx context.Context, userID, contactID int64) (*domain.Contact, error)
	Update(ctx context.Context, userID, contactID int64, req domain.CreateContactRequest) (*domain.Contact, error)
	Delete(ctx context.Context, userID, contactID int64) error
	Search(ctx context.Context, userID int64, f domain.ContactFilter) ([]domain.Contact, error)
	UpcomingBirthdays(ctx context.Context, userID int64) ([]domain.Contact, error)
}

type contactStore interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]domain.Contact, error)
	Get(ctx context.Context, userID, contactID int64) (*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Delete(ctx context.Context, userID, contactID int64) error
	Search(ctx context.Context, userID int64, f domain.ContactFilter) ([]domain.Contact, error)
	BirthdaysBetween(ctx context.Context, userID int64, from, to time.Time) ([]domain.Contact, error)
}

type service struct {
	repo contactStore
	now  func() time.Time
}

func NewService(repo contactStore) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, userID int64, req domain.CreateContactRequest) (*domain.Contact, error) {
	c, err := contactFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

func (s *service) List(ctx context.Context, userID int64, skip, limit int) ([]domain.Contact, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = 10
	}
	return s.repo.ListByUser(ctx, userID, skip, limit)
}

func (s *service) Get(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	return s.repo.Get(ctx, userID, contactID)
}

func (s *service) Update(ctx context.Context, userID, contactID int64, req domain.CreateContactRequest) (*domain.Contact, error) {
	c, err := contactFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	c.ID = contactID
	return s.repo.Update(ctx, c)
}

func (s *service) Delete(ctx context.Context, userID, contactID int64) error {
	return s.repo.Delete(ctx, userID, contactID)
}

func (s *service) Search(ctx context.Context, userID int64, f domain.ContactFilter) ([]domain.Contact, error) {
	return s.repo.Search(ctx, userID, f)
}

func (s *service) UpcomingBirthdays(ctx context.Context, userID int64) ([]domain.Contact, error) {
	today := s.now()
	return s.repo.BirthdaysBetween(ctx, userID, today, today.Add(birthdayWindow))
}

func contactFromRequest(userID int64, req domain.CreateContactRequest) (*domain.Contact, error) {
	c := &domain.Contact{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		AdditionalInfo: req.AdditionalInfo,
		UserID:         userID,
	}
	if req.Birthday != "" {
		b, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return nil, fmt.Errorf("birthday must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
		}
		c.Birthday = &b
	}
	return c, nil
}
