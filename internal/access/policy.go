package access

import (
	"time"

	"github.com/fquiz/fquiz/internal/model"
)

// Identity is the resolved requester: a signed-in user, a checked-in guest,
// or nobody. UserID is set whenever the requester maps to a users row,
// including guests who checked in with an email.
type Identity struct {
	UserID  string
	Email   string
	IsGuest bool
}

// Anonymous reports whether the requester resolved to no principal at all.
func (id Identity) Anonymous() bool { return id.UserID == "" && id.Email == "" }

// IsOwner reports whether the identity matches the set's creator.
func IsOwner(set *model.Set, id Identity) bool {
	return set.CreatedBy != nil && id.UserID != "" && *set.CreatedBy == id.UserID
}

// ViewDecision is the outcome of the view rule. When denied, Reason carries
// the distinguishable cause: "passcode_required", "passcode_expired" or
// "invalid_grant".
type ViewDecision struct {
	Allowed bool
	Reason  string
}

// CanView decides whether the requester may see the set's content.
//
// Rules, in order: a set without a passcode gate is open (unpublished sets
// stay out of anonymous listings, but a direct fetch is allowed); an expired
// passcode configuration blocks everyone except the owner; the owner always
// bypasses the gate; anyone else needs a valid, unexpired grant for this set.
func CanView(set *model.Set, id Identity, token, secret string, now time.Time) ViewDecision {
	if !set.PasscodeRequired {
		return ViewDecision{Allowed: true}
	}
	if IsOwner(set, id) {
		return ViewDecision{Allowed: true}
	}
	if set.PasscodeExpiresAt != nil && set.PasscodeExpiresAt.Before(now) {
		return ViewDecision{Reason: "passcode_expired"}
	}
	if token == "" {
		return ViewDecision{Reason: "passcode_required"}
	}
	if g := verifyGrantAt(secret, token, set.ID, now); g.OK {
		return ViewDecision{Allowed: true}
	}
	return ViewDecision{Reason: "invalid_grant"}
}

// CanEdit decides whether the requester may mutate the set's cards and
// questions or its title/description. Editability is deliberately
// independent of the passcode gate: passcodes control visibility, ownership
// and the public_editable option control writes.
func CanEdit(set *model.Set, id Identity) bool {
	return IsOwner(set, id) || set.Options.PublicEditable
}

// CanAdmin decides whether the requester may change publish state, the
// passcode gate, the set type, or options. Only the owner qualifies, except
// for ownerless legacy sets, which any signed-in requester may administer
// when the allowOwnerless policy flag is on.
func CanAdmin(set *model.Set, id Identity, allowOwnerless bool) bool {
	if IsOwner(set, id) {
		return true
	}
	if set.CreatedBy == nil && allowOwnerless {
		return !id.Anonymous()
	}
	return false
}
