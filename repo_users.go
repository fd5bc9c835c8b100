package auth

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the user store adapter. Create surfaces uniqueness violations as a
// conflict; Update and Delete fail with not-found for absent ids.
type Users interface {
	UserLookup

	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	Update(ctx context.Context, id int64, changes UserChanges) (*User, error)
	UpdateTx(ctx context.Context, tx bun.IDB, id int64, changes UserChanges) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
	DeleteTx(ctx context.Context, tx bun.IDB, id int64) (*User, error)
}

type users struct {
	db *bun.DB
}

var (
	_ Users      = (*users)(nil)
	_ UserLookup = (*users)(nil)
)

// NewUsersRepository returns a bun-backed Users store.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

// FindByEmail returns every record matching the email. The store does not
// enforce logical uniqueness here; callers take the first match.
func (a *users) FindByEmail(ctx context.Context, email string) ([]*User, error) {
	var records []*User
	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.email = ?", email).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query users by email")
	}
	return records, nil
}

func (a *users) FindByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userNotFound(id)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to query user by id")
	}
	return record, nil
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	return a.CreateTx(ctx, a.db, record)
}

// CreateTx inserts the record and lets the database assign its id. A racing
// duplicate email resolves to a single conflict outcome, not a corrupt row.
func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	_, err := tx.NewInsert().Model(record).Returning("*").Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, emailTaken(record.Email)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to insert user")
	}
	return record, nil
}

func (a *users) Update(ctx context.Context, id int64, changes UserChanges) (*User, error) {
	return a.UpdateTx(ctx, a.db, id, changes)
}

// UpdateTx merges the given fields onto the stored record. A supplied
// password is re-hashed, never stored in clear.
func (a *users) UpdateTx(ctx context.Context, tx bun.IDB, id int64, changes UserChanges) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userNotFound(id)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user for update")
	}

	if changes.FirstName != nil {
		record.FirstName = *changes.FirstName
	}
	if changes.LastName != nil {
		record.LastName = *changes.LastName
	}
	if changes.Age != nil {
		record.Age = *changes.Age
	}
	if changes.Email != nil {
		record.Email = *changes.Email
	}
	if changes.Password != nil {
		hash, err := HashPassword(*changes.Password)
		if err != nil {
			return nil, err
		}
		record.PasswordHash = hash
	}

	_, err = tx.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, emailTaken(record.Email)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update user")
	}

	return record, nil
}

func (a *users) Delete(ctx context.Context, id int64) (*User, error) {
	return a.DeleteTx(ctx, a.db, id)
}

// DeleteTx removes the record and returns it, failing with not-found when the
// id is absent.
func (a *users) DeleteTx(ctx context.Context, tx bun.IDB, id int64) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userNotFound(id)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user for delete")
	}

	if _, err := tx.NewDelete().Model(record).WherePK().Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}

	return record, nil
}

func userNotFound(id int64) error {
	clone := ErrIdentityNotFound.Clone()
	if clone == nil {
		return ErrIdentityNotFound
	}
	return clone.WithMetadata(map[string]any{"id": id})
}

func emailTaken(email string) error {
	clone := ErrEmailTaken.Clone()
	if clone == nil {
		return ErrEmailTaken
	}
	return clone.WithMetadata(map[string]any{"email": email})
}

// isUniqueViolation recognizes duplicate-key failures across the drivers we
// run against: the sqlite shim in tests and pgdriver in deployments. bun does
// not type these, so we match the driver message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE=23505")
}
