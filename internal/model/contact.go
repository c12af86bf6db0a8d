package model

import (
	"regexp"
	"unicode/utf8"
)

// ContactSubmission is one inquiry from the contact form. It is never
// persisted; it lives for a single request and is consumed by the
// contact relay.
type ContactSubmission struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	ServiceType string `json:"serviceType,omitempty"`
	Message     string `json:"message"`
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate applies the form's shape and length rules and reports every
// violation. Phone, company and service type are optional, length
// limits apply only when they are present.
func (c *ContactSubmission) Validate() error {
	var v ValidationError

	switch n := utf8.RuneCountInString(c.Name); {
	case n < 2:
		v.Add("name", "Name must be at least 2 characters")
	case n > 100:
		v.Add("name", "Name too long")
	}

	if !emailRe.MatchString(c.Email) {
		v.Add("email", "Please enter a valid email address")
	}

	if utf8.RuneCountInString(c.Phone) > 20 {
		v.Add("phone", "Phone number too long")
	}
	if utf8.RuneCountInString(c.Company) > 100 {
		v.Add("company", "Company name too long")
	}
	if utf8.RuneCountInString(c.ServiceType) > 100 {
		v.Add("serviceType", "Service type too long")
	}

	switch n := utf8.RuneCountInString(c.Message); {
	case n < 10:
		v.Add("message", "Message must be at least 10 characters")
	case n > 2000:
		v.Add("message", "Message too long")
	}

	return v.OrNil()
}
