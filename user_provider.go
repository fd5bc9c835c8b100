package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserLookup is the narrow store surface credential verification depends on.
// FindByEmail may return multiple records; email is treated as logically
// unique and the first match wins.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) ([]*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
}

// UserProvider resolves and authenticates users against a store.
type UserProvider struct {
	store  UserLookup
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserLookup) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user by email, compare the password against
// the stored hash, and return the sanitized identity. This is the single
// credential-verification routine; the direct sign-in flow and the login
// strategy both go through it.
func (u *UserProvider) VerifyIdentity(ctx context.Context, email, password string) (Identity, error) {
	users, err := u.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if len(users) == 0 {
		return nil, ErrAccountNotFound
	}

	user := users[0]

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return NewIdentityFromUser(user), nil
}

// FindIdentityByID resolves a sanitized identity by its store-assigned id.
func (u *UserProvider) FindIdentityByID(ctx context.Context, id int64) (Identity, error) {
	user, err := u.store.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user by id")
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	return NewIdentityFromUser(user), nil
}

var _ IdentityProvider = (*UserProvider)(nil)

// NewProviderLoginStrategy adapts an IdentityProvider into the LoginStrategy
// capability used by the strategy-configured guard.
func NewProviderLoginStrategy(provider IdentityProvider) LoginStrategy {
	return LoginStrategyFunc(func(ctx context.Context, email, password string) (Identity, error) {
		return provider.VerifyIdentity(ctx, email, password)
	})
}
