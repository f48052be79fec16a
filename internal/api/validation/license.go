package validation

import (
	"regexp"
	"strings"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// LicenseRequest mirrors the fields needed for license validation.
type LicenseRequest struct {
	AccessToken string
	Repository  string
	ActionID    string
}

var repositoryPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// ValidateLicenseRequest validates the fields of a license validation request.
func ValidateLicenseRequest(req LicenseRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.AccessToken) == "" {
		errs = append(errs, FieldError{Field: "accessToken", Message: "accessToken is required"})
	}

	repo := strings.TrimSpace(req.Repository)
	if repo == "" {
		errs = append(errs, FieldError{Field: "repository", Message: "repository is required"})
	} else if !repositoryPattern.MatchString(repo) {
		errs = append(errs, FieldError{Field: "repository", Message: "repository must be in owner/name form"})
	}

	if strings.TrimSpace(req.ActionID) == "" {
		errs = append(errs, FieldError{Field: "actionId", Message: "actionId is required"})
	}

	return errs
}
