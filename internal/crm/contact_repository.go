package crm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coppermill/crm-core/internal/infrastructure/database"
)

// ContactRepository provides CRUD access to customer contacts.
type ContactRepository struct {
	exec *database.Executor
}

// NewContactRepository creates a contact repository over the executor.
func NewContactRepository(exec *database.Executor) *ContactRepository {
	return &ContactRepository{exec: exec}
}

// Create inserts a new contact and returns the generated id. Optional
// fields (email, phone, company, assignee, notes) store as NULL when
// empty. The contact's ID and timestamps are set on return.
func (r *ContactRepository) Create(ctx context.Context, c *Contact) (int64, error) {
	now, stamp := nowStamp()

	id, _, err := r.exec.Exec(ctx,
		`INSERT INTO contacts (first_name, last_name, email, phone, company, assigned_to, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName,
		nullString(c.Email), nullString(c.Phone), nullString(c.Company),
		nullInt64(c.AssignedTo), nullString(c.Notes),
		stamp, stamp,
	)
	if err != nil {
		return 0, fmt.Errorf("creating contact: %w", err)
	}

	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return id, nil
}

// GetByID retrieves a contact by id.
// Returns ErrContactNotFound for an unknown id.
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*Contact, error) {
	row, err := r.exec.QueryRow(ctx,
		`SELECT contact_id, first_name, last_name, email, phone, company, assigned_to, notes, created_at, updated_at
		 FROM contacts WHERE contact_id = ?`, id)
	if err != nil {
		return nil, err
	}

	c, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListByAssignee returns all contacts assigned to a user, oldest first.
func (r *ContactRepository) ListByAssignee(ctx context.Context, userID int64) ([]Contact, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT contact_id, first_name, last_name, email, phone, company, assigned_to, notes, created_at, updated_at
		 FROM contacts WHERE assigned_to = ? ORDER BY contact_id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	if contacts == nil {
		contacts = []Contact{}
	}
	return contacts, nil
}

// Update overwrites every mutable field of a contact — a full-row
// overwrite, not a partial patch — and refreshes the update timestamp.
// Returns ErrContactNotFound if the id does not exist.
func (r *ContactRepository) Update(ctx context.Context, c *Contact) error {
	now, stamp := nowStamp()

	_, affected, err := r.exec.Exec(ctx,
		`UPDATE contacts
		 SET first_name = ?, last_name = ?, email = ?, phone = ?, company = ?, assigned_to = ?, notes = ?, updated_at = ?
		 WHERE contact_id = ?`,
		c.FirstName, c.LastName,
		nullString(c.Email), nullString(c.Phone), nullString(c.Company),
		nullInt64(c.AssignedTo), nullString(c.Notes),
		stamp, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}
	if affected == 0 {
		return ErrContactNotFound
	}

	c.UpdatedAt = now
	return nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanContact decodes a contact row from either a Row or Rows.
func scanContact(s scanner) (*Contact, error) {
	var c Contact
	var email, phone, company, notes sql.NullString
	var assignedTo sql.NullInt64
	var createdAt, updatedAt string

	err := s.Scan(&c.ID, &c.FirstName, &c.LastName, &email, &phone, &company,
		&assignedTo, &notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning contact: %w", err)
	}

	c.Email = email.String
	c.Phone = phone.String
	c.Company = company.String
	c.Notes = notes.String
	if assignedTo.Valid {
		c.AssignedTo = &assignedTo.Int64
	}
	c.CreatedAt = parseStamp(createdAt)
	c.UpdatedAt = parseStamp(updatedAt)

	return &c, nil
}
