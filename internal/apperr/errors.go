// Package apperr defines the error taxonomy shared by services and
// controllers. Services return these; controllers translate them to HTTP
// statuses and JSON reason codes.
package apperr

import (
	"errors"
	"fmt"
)

// ForbiddenReason tells the UI why access was denied, so it can render
// "enter passcode" vs "passcode expired" vs a plain forbidden page.
type ForbiddenReason string

const (
	ReasonPasscodeRequired ForbiddenReason = "passcode_required"
	ReasonPasscodeExpired  ForbiddenReason = "passcode_expired"
	ReasonInvalidGrant     ForbiddenReason = "invalid_grant"
	ReasonNotOwner         ForbiddenReason = "not_owner"
	ReasonNotEditable      ForbiddenReason = "not_editable"
)

// NotFoundError reports an absent entity.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ForbiddenError reports a denied view/edit/admin decision.
type ForbiddenError struct {
	Reason ForbiddenReason
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Reason)
}

// ValidationError reports a malformed request payload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NotFound(resource, id string) error { return &NotFoundError{Resource: resource, ID: id} }

func Forbidden(reason ForbiddenReason) error { return &ForbiddenError{Reason: reason} }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsForbidden(err error) (ForbiddenReason, bool) {
	var fb *ForbiddenError
	if errors.As(err, &fb) {
		return fb.Reason, true
	}
	return "", false
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
