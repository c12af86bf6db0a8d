// Package contact exposes the contact form endpoint. Submissions are
// validated, relayed as email and never stored.
package contact

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/skriptnetworks/siteapi/internal/errresponse"
	"github.com/skriptnetworks/siteapi/internal/mail"
	"github.com/skriptnetworks/siteapi/internal/model"
)

// Resource bundles the relay and logger the contact handler needs.
type Resource struct {
	Relay *mail.Relay
	Log   *zap.SugaredLogger
}

func NewResource(relay *mail.Relay, log *zap.SugaredLogger) *Resource {
	return &Resource{Relay: relay, Log: log}
}

func (rs *Resource) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", rs.Submit)

	return r
}

// SubmissionRequest is the contact form payload.
type SubmissionRequest struct {
	*model.ContactSubmission
}

// Bind leaves validation to the relay; an empty body validates like an
// all-empty form there.
func (req *SubmissionRequest) Bind(r *http.Request) error {
	if req.ContactSubmission == nil {
		req.ContactSubmission = &model.ContactSubmission{}
	}

	return nil
}

// SubmittedResponse is the success envelope.
type SubmittedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (rd *SubmittedResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Submit validates the form and relays it. A transport rejection is a
// 500 pointing the user at a manual retry; nothing is queued.
func (rs *Resource) Submit(w http.ResponseWriter, r *http.Request) {
	data := &SubmissionRequest{}
	if err := render.Bind(r, data); err != nil {
		rs.render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	err := rs.Relay.Submit(r.Context(), *data.ContactSubmission)

	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		rs.render(w, r, errresponse.ErrValidation(err, "Invalid form data", ve.Details()))
	case err != nil:
		rs.Log.Errorw("contact form relay failed", "error", err)
		rs.render(w, r, errresponse.ErrInternal(err,
			"Failed to send message. Please try again or contact us directly at info@skriptnetworks.com"))
	default:
		rs.render(w, r, &SubmittedResponse{
			Success: true,
			Message: "Message sent successfully! We'll get back to you within 24 hours.",
		})
	}
}

func (rs *Resource) render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		rs.Log.Errorw("rendering response", "error", err)
	}
}
