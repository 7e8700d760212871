package auth

import (
	"chat-live/domain/chat"
	"chat-live/errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateSignup checks field presence and formats, then password complexity.
func ValidateSignup(cmd chat.SignupCommand) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if !isPasswordComplex(cmd.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

// ValidateProfileUpdate rejects empty updates before checking field lengths.
func ValidateProfileUpdate(cmd chat.UpdateProfileCommand) error {
	if cmd.IsEmpty() {
		return errors.ErrNothingToUpdate
	}
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return nil
}

func isPasswordComplex(s string) bool {
	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasNumber && hasSpecial
}
