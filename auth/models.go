package auth

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// User is the identity record. The password never leaves the model in
// plaintext; only the bcrypt hash is stored and it is excluded from JSON.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	FirstName    string     `bun:"firstname,notnull" json:"firstname"`
	LastName     string     `bun:"lastname,notnull" json:"lastname"`
	Email        string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	IsActive     bool       `bun:"is_active,notnull" json:"-"`
	IsStaff      bool       `bun:"is_staff,notnull" json:"-"`
	IsSuperuser  bool       `bun:"is_superuser,notnull" json:"-"`
	CreatedAt    *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt    *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Profile is the client-facing shape of a user. Password hash and the
// permission flags are never serialized out.
type Profile struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstname"`
	LastName  string     `json:"lastname"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at"`
}

// Profile returns the serializable projection of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Profiles maps a user list to its client-facing projection.
func Profiles(users []User) []Profile {
	out := make([]Profile, len(users))
	for i := range users {
		out[i] = users[i].Profile()
	}
	return out
}

// CreateSchema creates the users table if it does not exist. The services
// run it once at startup.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}
