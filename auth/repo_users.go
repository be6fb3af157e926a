package auth

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// UserFilter narrows directory lookups. Zero value matches every user.
type UserFilter struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
}

// IsZero reports whether the filter matches everything.
func (f UserFilter) IsZero() bool {
	return f.ID == 0 && f.Email == "" && f.FirstName == "" && f.LastName == ""
}

// Users is the user directory: create, find, and delete user records.
type Users interface {
	Register(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Find(ctx context.Context, filter UserFilter, limit, offset int) ([]User, int, error)
	Update(ctx context.Context, user *User) (*User, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByEmail(ctx context.Context, email string) (bool, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository returns the bun-backed Users directory.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

// Register inserts a new user after checking email uniqueness inside a
// single transaction. The check and the insert are not atomic with
// respect to concurrent registrations of the same email; the unique
// column constraint is the backstop.
func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	err := a.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*User)(nil)).
			Where("?TableAlias.email = ?", user.Email).
			Exists(ctx)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to check email uniqueness")
		}

		if exists {
			return ErrDuplicateEmail
		}

		if _, err := tx.NewInsert().Model(user).Returning("*").Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to insert user")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (a *users) GetByID(ctx context.Context, id int64) (*User, error) {
	user := &User{}

	err := a.db.NewSelect().
		Model(user).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user by id")
	}

	return user, nil
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}

	err := a.db.NewSelect().
		Model(user).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user by email")
	}

	return user, nil
}

// Find lists users matching the filter, newest ids last, with the total
// match count for pagination. Name filters are case-insensitive
// substring matches; id and email are exact.
func (a *users) Find(ctx context.Context, filter UserFilter, limit, offset int) ([]User, int, error) {
	var records []User

	q := a.db.NewSelect().Model(&records)

	if filter.ID != 0 {
		q = q.Where("?TableAlias.id = ?", filter.ID)
	}

	if filter.Email != "" {
		q = q.Where("?TableAlias.email = ?", filter.Email)
	}

	if filter.FirstName != "" {
		q = q.Where(`lower(?TableAlias.firstname) LIKE ? ESCAPE '\'`, likePattern(filter.FirstName))
	}

	if filter.LastName != "" {
		q = q.Where(`lower(?TableAlias.lastname) LIKE ? ESCAPE '\'`, likePattern(filter.LastName))
	}

	total, err := q.Order("id ASC").Limit(limit).Offset(offset).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}

	return records, total, nil
}

// likePattern builds a case-insensitive substring match with LIKE
// wildcards in the input treated as literals.
func likePattern(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return "%" + s + "%"
}

// Update persists field changes for an existing user inside a
// transaction and returns the stored record.
func (a *users) Update(ctx context.Context, user *User) (*User, error) {
	err := a.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(user).
			Column("firstname", "lastname", "is_active", "is_staff", "is_superuser").
			Set("updated_at = current_timestamp").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to update user")
		}

		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrUserNotFound
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return a.GetByID(ctx, user.ID)
}

// DeleteByID hard-deletes the user row with the given id, reporting
// whether a row was removed.
func (a *users) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return a.deleteWhere(ctx, "?TableAlias.id = ?", id)
}

// DeleteByEmail hard-deletes the user row with the given email,
// reporting whether a row was removed.
func (a *users) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	return a.deleteWhere(ctx, "?TableAlias.email = ?", email)
}

func (a *users) deleteWhere(ctx context.Context, clause string, arg any) (bool, error) {
	res, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where(clause, arg).
		Exec(ctx)
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to read delete result")
	}

	return n > 0, nil
}
