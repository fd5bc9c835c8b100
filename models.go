package auth

import (
	"github.com/uptrace/bun"
)

// Column bounds enforced at the payload boundary; the store assumes they hold.
const (
	MaxNameLength  = 15
	MaxEmailLength = 25
	// bcrypt output is always 60 bytes
	PasswordHashLength = 60
)

// User is the user model. The store assigns ID on creation; it is immutable
// afterwards. Email is unique and stored case-sensitively.
//
// PasswordHash is deliberately excluded from JSON so it cannot leak through a
// serialized response or a token payload. The only sanctioned way to derive a
// token-safe representation is NewIdentityFromUser.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	FirstName     string `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string `bun:"last_name,notnull" json:"last_name,omitempty"`
	Age           int    `bun:"age,notnull" json:"age,omitempty"`
	Email         string `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string `bun:"password_hash,notnull" json:"-"`
}

// UserChanges is a partial update: nil fields are left untouched. A non-nil
// Password is re-hashed before it reaches the store.
type UserChanges struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Age       *int    `json:"age,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
}
