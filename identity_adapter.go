package auth

// userIdentity is the sanitized view of a User. It copies the public fields
// and, by construction, has nowhere to hold a password hash.
type userIdentity struct {
	id        int64
	firstName string
	lastName  string
	age       int
	email     string
}

// NewIdentityFromUser strips the password hash from a user record and returns
// the sanitized Identity. This is the single conversion point between stored
// users and anything that ends up in a token payload or request context.
func NewIdentityFromUser(user *User) Identity {
	if user == nil {
		return nil
	}
	return userIdentity{
		id:        user.ID,
		firstName: user.FirstName,
		lastName:  user.LastName,
		age:       user.Age,
		email:     user.Email,
	}
}

// IdentityFromClaims rebuilds the sanitized identity carried by validated
// token claims.
func IdentityFromClaims(claims AuthClaims) Identity {
	if claims == nil {
		return nil
	}
	return userIdentity{
		id:        claims.UserID(),
		firstName: claims.FirstName(),
		lastName:  claims.LastName(),
		age:       claims.Age(),
		email:     claims.Email(),
	}
}

func (u userIdentity) ID() int64 {
	return u.id
}

func (u userIdentity) FirstName() string {
	return u.firstName
}

func (u userIdentity) LastName() string {
	return u.lastName
}

func (u userIdentity) Age() int {
	return u.age
}

func (u userIdentity) Email() string {
	return u.email
}

var _ Identity = userIdentity{}
