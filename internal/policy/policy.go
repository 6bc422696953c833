// Package policy concentrates every authorization rule of the forum in a
// single pure function, so the rules can be read and tested in one place
// instead of being scattered across handlers.
package policy

import "github.com/KAKADIVA/testePFI/internal/models"

// Action enumerates every gated operation.
type Action int

const (
	ActionReadQuestions Action = iota
	ActionReadAnswers
	ActionCreateQuestion
	ActionCreateAnswer
	ActionDeleteQuestion
	ActionDeleteAnswer
)

// Reason explains a denial; handlers map each to a status code.
type Reason string

const (
	ReasonUnauthenticated  Reason = "unauthenticated"
	ReasonProfessionalOnly Reason = "professional-only"
	// ReasonNotOwner covers both "not yours" and "does not exist": delete
	// endpoints answer 404 for both so callers cannot probe for existence.
	ReasonNotOwner Reason = "not-owner-or-missing"
)

// Decision is the outcome of Authorize.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r Reason) Decision { return Decision{Reason: r} }

// Authorize decides whether user may perform action on a record owned by
// ownerID. user is nil for unauthenticated requests; ownerID is ignored
// for non-delete actions.
func Authorize(user *models.User, action Action, ownerID uint) Decision {
	switch action {
	case ActionReadQuestions, ActionReadAnswers:
		// reads are open, matching the original behavior
		return allow()

	case ActionCreateQuestion:
		if user == nil {
			return deny(ReasonUnauthenticated)
		}
		return allow()

	case ActionCreateAnswer:
		if user == nil {
			return deny(ReasonUnauthenticated)
		}
		switch user.Role {
		case models.RoleProfessional:
			return allow()
		default:
			return deny(ReasonProfessionalOnly)
		}

	case ActionDeleteQuestion, ActionDeleteAnswer:
		if user == nil {
			return deny(ReasonUnauthenticated)
		}
		if user.ID != ownerID {
			return deny(ReasonNotOwner)
		}
		return allow()
	}

	return deny(ReasonUnauthenticated)
}
