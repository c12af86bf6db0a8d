// client_test.go
//go:build !integration

package client

import (
	"testing"
)

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 400, Message: "Invalid form data", Details: []string{"email: Please enter a valid email address"}}
	want := "Invalid form data (email: Please enter a valid email address)"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}

	bare := &APIError{StatusCode: 404, Message: "Article not found"}
	if bare.Error() != "Article not found" {
		t.Fatalf("got %q", bare.Error())
	}
}
