package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	emailMinLen    = 3
	emailMaxLen    = 254
	passwordMinLen = 8
	passwordMaxLen = 100
	nameMinLen     = 2
	nameMaxLen     = 100
	numberMin      = 1
	numberMax      = 10000
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error marks a failed field check so handlers can answer 400 instead of 500
type Error string

func (e Error) Error() string { return string(e) }

func errorf(format string, args ...interface{}) error {
	return Error(fmt.Sprintf(format, args...))
}

// ValidateEmail checks that an email address is well formed and within
// the accepted length range.
func ValidateEmail(email string) error {
	if len(email) < emailMinLen || len(email) > emailMaxLen {
		return errorf("email must be between %d and %d characters", emailMinLen, emailMaxLen)
	}
	if !emailRegex.MatchString(email) {
		return errorf("email is not a valid email address")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return errorf("password must be between %d and %d characters", passwordMinLen, passwordMaxLen)
	}
	return nil
}

func ValidateUsername(username string) error {
	if len(username) < nameMinLen || len(username) > nameMaxLen {
		return errorf("username must be between %d and %d characters", nameMinLen, nameMaxLen)
	}
	return nil
}

// ValidateName checks child, habit, task and gift names.
func ValidateName(name string) error {
	if len(name) < nameMinLen || len(name) > nameMaxLen {
		return errorf("name must be between %d and %d characters", nameMinLen, nameMaxLen)
	}
	return nil
}

// ValidateNumber checks reward amounts, prices and day counts.
func ValidateNumber(field string, n int) error {
	if n < numberMin || n > numberMax {
		return errorf("%s must be between %d and %d", field, numberMin, numberMax)
	}
	return nil
}

func ValidateGender(gender string) error {
	if gender != "male" && gender != "female" {
		return errorf("gender must be either male or female")
	}
	return nil
}

// ValidateDate checks a calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errorf("date must be a valid date in YYYY-MM-DD format")
	}
	return nil
}

// ValidateImageURL accepts an empty value; gifts do not require an image.
func ValidateImageURL(url string) error {
	if url == "" {
		return nil
	}
	if len(url) > 2048 {
		return errorf("imageUrl must be at most 2048 characters")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return errorf("imageUrl must be an http or https URL")
	}
	return nil
}
