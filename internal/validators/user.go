package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/evently/models"
)

// Field name constants accepted by [UserValidator]. They restrict
// validation to a subset of the request fields.
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldOTP         = "otp"
	FieldNewPassword = "new_password"
)

// UserValidator validates the request bodies of the account endpoints.
type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms of
// every request model are accepted. Without fields every rule of the model
// is checked.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.EmailRequest:
		return v.validateEmailRequest(value, fields...)
	case *models.EmailRequest:
		return v.validateEmailRequest(*value, fields...)

	case models.VerifyOTPRequest:
		return v.validateVerifyOTP(value, fields...)
	case *models.VerifyOTPRequest:
		return v.validateVerifyOTP(*value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPassword(value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPassword(*value, fields...)

	case models.UpdateUserRequest:
		return v.validateUpdateUser(value, fields...)
	case *models.UpdateUserRequest:
		return v.validateUpdateUser(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegister(r models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFirstName, FieldLastName, FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldFirstName:
			if blank(r.FirstName) {
				return ErrRegisterFieldsRequired
			}
		case FieldLastName:
			if blank(r.LastName) {
				return ErrRegisterFieldsRequired
			}
		case FieldUsername:
			if blank(r.Username) {
				return ErrRegisterFieldsRequired
			}
		case FieldEmail:
			if blank(r.Email) {
				return ErrRegisterFieldsRequired
			}
			if !validEmail(r.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if r.Password == "" {
				return ErrRegisterFieldsRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateLogin(r models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if blank(r.Email) {
				return ErrCredentialsRequired
			}
		case FieldPassword:
			if r.Password == "" {
				return ErrCredentialsRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateEmailRequest(r models.EmailRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if blank(r.Email) {
				return ErrEmailRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateVerifyOTP(r models.VerifyOTPRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldOTP}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if blank(r.Email) {
				return ErrOTPRequired
			}
		case FieldOTP:
			if blank(r.OTP) {
				return ErrOTPRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateResetPassword checks the OTP only when FieldOTP is listed or no
// fields are given, so callers that allow resets without a code pass
// FieldEmail and FieldNewPassword explicitly.
func (v *UserValidator) validateResetPassword(r models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldOTP, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if blank(r.Email) {
				return ErrEmailRequired
			}
		case FieldOTP:
			if blank(r.OTP) {
				return ErrOTPRequired
			}
		case FieldNewPassword:
			if r.NewPassword == "" {
				return ErrNewPasswordRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUpdateUser applies partial-update semantics: nil means "do not
// touch", a present value must not be blank.
func (v *UserValidator) validateUpdateUser(r models.UpdateUserRequest, fields ...string) error {
	if r.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if len(fields) == 0 {
		fields = []string{FieldFirstName, FieldLastName, FieldUsername, FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldFirstName:
			if r.FirstName != nil && blank(*r.FirstName) {
				return ErrEmptyUpdateField
			}
		case FieldLastName:
			if r.LastName != nil && blank(*r.LastName) {
				return ErrEmptyUpdateField
			}
		case FieldUsername:
			if r.Username != nil && blank(*r.Username) {
				return ErrEmptyUpdateField
			}
		case FieldEmail:
			if r.Email == nil {
				continue
			}
			if blank(*r.Email) {
				return ErrEmptyUpdateField
			}
			if !validEmail(*r.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validEmail accepts a bare addr-spec; display names are rejected.
func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
