package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-contacts-api/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const contactColumns = "id, first_name, last_name, email, phone_number, birthday, additional_info, user_id"

// ContactRepo provides typed Postgres operations for the contacts table.
// Every read and write is scoped to the owning user.
type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	query := `INSERT INTO contacts (first_name, last_name, email, phone_number, birthday, additional_info, user_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		c.FirstName, c.LastName, c.Email, c.PhoneNumber, c.Birthday, c.AdditionalInfo, c.UserID).
		Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("contact email already exists: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *ContactRepo) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
	          FROM contacts
	          WHERE user_id = $1
	          ORDER BY id
	          OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanContacts(rows)
}

func (r *ContactRepo) Get(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
	          FROM contacts
	          WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, contactID, userID)
	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *ContactRepo) Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	query := `UPDATE contacts
	          SET first_name = $3, last_name = $4, email = $5, phone_number = $6, birthday = $7, additional_info = $8
	          WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.FirstName, c.LastName, c.Email, c.PhoneNumber, c.Birthday, c.AdditionalInfo)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("contact email already exists: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *ContactRepo) Delete(ctx context.Context, userID, contactID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = $1 AND user_id = $2`, contactID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search returns the user's contacts matching every non-empty filter field
// as a case-insensitive substring.
func (r *ContactRepo) Search(ctx context.Context, userID int64, f domain.ContactFilter) ([]domain.Contact, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1`)
	args := []interface{}{userID}

	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		sb.WriteString(" AND " + column + " ILIKE $" + strconv.Itoa(len(args)))
	}
	addFilter("first_name", f.FirstName)
	addFilter("last_name", f.LastName)
	addFilter("email", f.Email)
	sb.WriteString(" ORDER BY id")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanContacts(rows)
}

// BirthdaysBetween returns the user's contacts whose birthday (month/day,
// year ignored) falls between from and to. The window may cross a month
// boundary; it is not expected to cross a year boundary wider than the
// two months involved. When from and to share a month the two-sided
// filter degenerates to that entire month, so mid-month windows include
// birthdays outside the exact day range.
func (r *ContactRepo) BirthdaysBetween(ctx context.Context, userID int64, from, to time.Time) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
	          FROM contacts
	          WHERE user_id = $1
	            AND birthday IS NOT NULL
	            AND (
	                  (EXTRACT(MONTH FROM birthday) = $2 AND EXTRACT(DAY FROM birthday) >= $3)
	               OR (EXTRACT(MONTH FROM birthday) = $4 AND EXTRACT(DAY FROM birthday) <= $5)
	            )
	          ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID,
		int(from.Month()), from.Day(), int(to.Month()), to.Day())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanContacts(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	c := &domain.Contact{}
	var birthday sql.NullTime
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber,
		&birthday, &c.AdditionalInfo, &c.UserID)
	if err != nil {
		return nil, err
	}
	if birthday.Valid {
		b := birthday.Time
		c.Birthday = &b
	}
	return c, nil
}

func scanContacts(rows *sql.Rows) ([]domain.Contact, error) {
	contacts := []domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return contacts, nil
}
