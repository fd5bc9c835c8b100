package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SignInPayload is the credential pair for both sign-in flows.
type SignInPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// GetEmail returns the email
func (r SignInPayload) GetEmail() string {
	return r.Email
}

// GetPassword will return the password
func (r SignInPayload) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r SignInPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			validation.Length(3, MaxEmailLength),
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

var _ LoginPayload = SignInPayload{}

// CreateUserPayload is the account creation body, bounded to the column
// widths of the users table.
type CreateUserPayload struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Age       int    `form:"age" json:"age"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r CreateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, MaxNameLength)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, MaxNameLength)),
		validation.Field(&r.Age, validation.Required, validation.Min(1)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, MaxEmailLength), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
	)
}

// Message converts the payload into the registration command message.
func (r CreateUserPayload) Message() RegisterUserMessage {
	return RegisterUserMessage{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Age:       r.Age,
		Email:     r.Email,
		Password:  r.Password,
	}
}
