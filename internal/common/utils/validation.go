package utils

import (
	"regexp"
	"time"

	"github.com/hirosato/smartrt/internal/domain/errors"
)

var (
	// DateRegex validates ISO 8601 date strings (YYYY-MM-DD)
	DateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateISODate validates an ISO 8601 date string (YYYY-MM-DD)
func ValidateISODate(date string) error {
	if !DateRegex.MatchString(date) {
		return errors.NewValidationError("invalid date format, should be YYYY-MM-DD")
	}

	// Parse the date to ensure it's valid
	_, err := time.Parse("2006-01-02", date)
	if err != nil {
		return errors.NewValidationError("invalid date value")
	}

	return nil
}

// ValidateDateRange validates optional inclusive date bounds
func ValidateDateRange(start, end string) error {
	if start != "" {
		if err := ValidateISODate(start); err != nil {
			return err
		}
	}
	if end != "" {
		if err := ValidateISODate(end); err != nil {
			return err
		}
	}
	if start != "" && end != "" && start > end {
		return errors.NewValidationError("start date must not be after end date")
	}
	return nil
}
