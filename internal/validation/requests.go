package validation

import "crediwallet/internal/models"

// ValidateRegistration checks a registration payload.
func ValidateRegistration(input models.CreateUserInput) *Validator {
	v := New()
	v.Required("name", input.Name)
	v.MaxLength("name", input.Name, MaxNameLength)
	v.Required("email", input.Email)
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	v.Required("password", input.Password)
	if input.Password != "" {
		v.Password("password", input.Password)
	}
	return v
}

// ValidateLogin checks a login payload.
func ValidateLogin(email, password string) *Validator {
	v := New()
	v.Required("email", email)
	if email != "" {
		v.Email("email", email)
	}
	v.Required("password", password)
	return v
}
