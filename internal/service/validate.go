package service

import "strings"

// ValidationError reports malformed or policy-violating user input. It is
// shown to the caller as a 422 reply and never logged as an incident.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateEmail checks a decoded request field. A nil pointer means the
// field was absent from the request body.
func ValidateEmail(email *string) (string, *ValidationError) {
	if email == nil || *email == "" {
		return "", &ValidationError{Message: "E-mail must be set"}
	}
	if !strings.Contains(*email, "@") {
		return "", &ValidationError{Message: "Invalid e-mail"}
	}
	return *email, nil
}

func ValidatePassword(plain *string) (string, *ValidationError) {
	if plain == nil || *plain == "" {
		return "", &ValidationError{Message: "Password must be set"}
	}
	if *plain == "1234" {
		return "", &ValidationError{Message: "Insecure password"}
	}
	return *plain, nil
}
