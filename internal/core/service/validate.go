package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/talenthq/succession-portal/internal/core/domain"
)

var validate = validator.New()

// validateCredentials checks the signup shape and collects every violation
// so clients see all problems in one round trip. It never touches the store.
func (s *AuthService) validateCredentials(username, password string) *domain.ValidationError {
	var violations []string

	if err := validate.Var(username, fmt.Sprintf("required,min=%d", s.role.UsernameMinLen)); err != nil {
		violations = append(violations, usernameViolation(s.role.UsernameMinLen))
	}
	if err := validate.Var(password, "required,min=6"); err != nil {
		violations = append(violations, "Password must be at least 6 chars long")
	}

	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

func usernameViolation(minLen int) string {
	if minLen > 1 {
		return fmt.Sprintf("Username must be at least %d chars long", minLen)
	}
	return "Username is required"
}
