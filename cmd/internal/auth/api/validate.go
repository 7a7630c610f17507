package authapi

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Intentionally permissive: the unique index on the normalized email is the
// real gate, this only catches obvious typos before a round trip.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var contactRe = regexp.MustCompile(`^[0-9]{10}$`)

const passwordMinLen = 6

func validateSignup(req signupRequest) []string {
	var msgs []string
	if strings.TrimSpace(req.FirstName) == "" {
		msgs = append(msgs, "First Name is Required")
	}
	if strings.TrimSpace(req.Email) == "" || !emailRe.MatchString(strings.TrimSpace(req.Email)) {
		msgs = append(msgs, "Invalid Email Address")
	}
	if utf8.RuneCountInString(req.Password) < passwordMinLen {
		msgs = append(msgs, "Password must be at least 6 Characters")
	}
	if req.Password != req.ConfirmPassword {
		msgs = append(msgs, "Password and Confirm Password Do Not Match")
	}
	if !contactRe.MatchString(strings.TrimSpace(req.ContactNumber)) {
		msgs = append(msgs, "Contact Number must be of 10 digits")
	}
	return msgs
}

func validateLogin(req loginRequest) []string {
	var msgs []string
	if strings.TrimSpace(req.Email) == "" || !emailRe.MatchString(strings.TrimSpace(req.Email)) {
		msgs = append(msgs, "Invalid Email Address")
	}
	if req.Password == "" {
		msgs = append(msgs, "Password is Required")
	}
	return msgs
}
