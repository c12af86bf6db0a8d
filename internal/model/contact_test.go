package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() ContactSubmission {
	return ContactSubmission{
		Name:    "Jo Lim",
		Email:   "a@b.com",
		Message: "We need a full network audit for our office.",
	}
}

func TestContactSubmissionValid(t *testing.T) {
	form := validForm()
	form.Phone = "+60 12-345 6789"
	form.Company = "Example Sdn Bhd"
	form.ServiceType = "Cybersecurity"

	assert.NoError(t, form.Validate())
}

func TestContactMessageLengthBoundary(t *testing.T) {
	form := validForm()

	form.Message = strings.Repeat("x", 9)
	err := form.Validate()
	require.Error(t, err)
	assert.Contains(t, details(t, err), "message: Message must be at least 10 characters")

	form.Message = strings.Repeat("x", 10)
	assert.NoError(t, form.Validate())

	form.Message = strings.Repeat("x", 2001)
	err = form.Validate()
	require.Error(t, err)
	assert.Contains(t, details(t, err), "message: Message too long")
}

func TestContactEmailSyntax(t *testing.T) {
	form := validForm()

	form.Email = "not-an-email"
	err := form.Validate()
	require.Error(t, err)
	assert.Contains(t, details(t, err), "email: Please enter a valid email address")

	form.Email = "a@b.com"
	assert.NoError(t, form.Validate())
}

func TestContactValidationEnumeratesEveryViolation(t *testing.T) {
	form := ContactSubmission{
		Name:    "J",
		Email:   "nope",
		Phone:   strings.Repeat("9", 21),
		Message: "short",
	}

	err := form.Validate()
	require.Error(t, err)

	got := details(t, err)
	assert.Equal(t, []string{
		"name: Name must be at least 2 characters",
		"email: Please enter a valid email address",
		"phone: Phone number too long",
		"message: Message must be at least 10 characters",
	}, got)
}

func TestContactOptionalFieldLimits(t *testing.T) {
	form := validForm()
	form.Company = strings.Repeat("c", 101)
	form.ServiceType = strings.Repeat("s", 101)

	err := form.Validate()
	require.Error(t, err)

	got := details(t, err)
	assert.Contains(t, got, "company: Company name too long")
	assert.Contains(t, got, "serviceType: Service type too long")
}

func details(t *testing.T, err error) []string {
	t.Helper()

	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected a ValidationError, got %T", err)

	return ve.Details()
}
