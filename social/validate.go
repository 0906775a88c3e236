package social

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"socialnet/model"
)

// ValidateUser checks the structural rules a user must satisfy before any
// persistence write. Every violated rule is reported, not just the first.
func ValidateUser(u *model.User) error {
	if u == nil {
		return invalidInput("user cannot be nil")
	}
	var violations []string
	violations = append(violations, validateName("first name", u.FirstName)...)
	violations = append(violations, validateName("last name", u.LastName)...)
	violations = append(violations, validateEmail(u.Email)...)
	if len(violations) > 0 {
		return validationError(violations)
	}
	return nil
}

// validateName enforces: non-empty, at least 3 characters, uppercase first
// letter, lowercase a-z for everything after it.
func validateName(label, name string) []string {
	if name == "" {
		return []string{label + " cannot be empty."}
	}
	runes := []rune(name)
	if len(runes) < 3 {
		return []string{label + " should contain at least 3 characters."}
	}
	if !unicode.IsUpper(runes[0]) {
		return []string{label + " needs to start with an uppercase letter."}
	}
	for _, r := range runes[1:] {
		if r < 'a' || r > 'z' {
			return []string{label + " should contain only lowercase letters after the first."}
		}
	}
	return nil
}

// validateEmail enforces exactly one '@' and a dotted domain part.
func validateEmail(email string) []string {
	if email == "" {
		return []string{"email cannot be empty."}
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return []string{"email format not valid."}
	}
	if !strings.Contains(parts[1], ".") {
		return []string{"email domain format not valid."}
	}
	return nil
}

// ValidateFriendship checks that both endpoints are set and distinct.
func ValidateFriendship(f *model.Friendship) error {
	if f == nil {
		return invalidInput("friendship cannot be nil")
	}
	var violations []string
	if f.UserID1 == uuid.Nil || f.UserID2 == uuid.Nil {
		violations = append(violations, "friendship endpoints cannot be empty.")
	}
	if f.UserID1 != uuid.Nil && f.UserID1 == f.UserID2 {
		violations = append(violations, "friendship cannot link a user to itself.")
	}
	if len(violations) > 0 {
		return validationError(violations)
	}
	return nil
}
