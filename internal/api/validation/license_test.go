package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentforge/license-server/internal/api/validation"
)

func TestValidateLicenseRequest_Valid(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateLicenseRequest(validation.LicenseRequest{
		AccessToken: "gho_token",
		Repository:  "octocat/hello-world",
		ActionID:    "run-1",
	})
	assert.Empty(t, errs)
}

func TestValidateLicenseRequest_MissingFields(t *testing.T) {
	t.Parallel()

	errs := validation.ValidateLicenseRequest(validation.LicenseRequest{})
	assert.Len(t, errs, 3)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"accessToken", "repository", "actionId"}, fields)
}

func TestValidateLicenseRequest_RepositoryFormat(t *testing.T) {
	t.Parallel()

	for _, repo := range []string{"no-slash", "/name", "owner/", "a/b/c", "owner/na me"} {
		errs := validation.ValidateLicenseRequest(validation.LicenseRequest{
			AccessToken: "gho_token",
			Repository:  repo,
			ActionID:    "run-1",
		})
		assert.NotEmpty(t, errs, "repository %q should be rejected", repo)
	}

	errs := validation.ValidateLicenseRequest(validation.LicenseRequest{
		AccessToken: "gho_token",
		Repository:  "my.org/repo_name-2",
		ActionID:    "run-1",
	})
	assert.Empty(t, errs)
}
