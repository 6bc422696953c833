package policy

import (
	"testing"

	"github.com/KAKADIVA/testePFI/internal/models"
)

func member(id uint) *models.User {
	return &models.User{ID: id, Role: models.RoleMember}
}

func professional(id uint) *models.User {
	return &models.User{ID: id, Role: models.RoleProfessional}
}

// TestAuthorize_Reads verifies reads stay open even without a session.
func TestAuthorize_Reads(t *testing.T) {
	for _, action := range []Action{ActionReadQuestions, ActionReadAnswers} {
		if d := Authorize(nil, action, 0); !d.Allowed {
			t.Errorf("Authorize(nil, %v) = deny(%s), want allow", action, d.Reason)
		}
		if d := Authorize(member(1), action, 0); !d.Allowed {
			t.Errorf("Authorize(member, %v) = deny(%s), want allow", action, d.Reason)
		}
	}
}

// TestAuthorize_CreateQuestion verifies any authenticated user may ask.
func TestAuthorize_CreateQuestion(t *testing.T) {
	if d := Authorize(nil, ActionCreateQuestion, 0); d.Allowed {
		t.Error("unauthenticated CreateQuestion allowed, want deny")
	}
	if d := Authorize(member(1), ActionCreateQuestion, 0); !d.Allowed {
		t.Errorf("member CreateQuestion denied: %s", d.Reason)
	}
	if d := Authorize(professional(2), ActionCreateQuestion, 0); !d.Allowed {
		t.Errorf("professional CreateQuestion denied: %s", d.Reason)
	}
}

// TestAuthorize_CreateAnswer verifies only professionals may answer.
func TestAuthorize_CreateAnswer(t *testing.T) {
	if d := Authorize(nil, ActionCreateAnswer, 0); d.Allowed || d.Reason != ReasonUnauthenticated {
		t.Errorf("unauthenticated CreateAnswer = %+v, want deny(unauthenticated)", d)
	}
	if d := Authorize(member(1), ActionCreateAnswer, 0); d.Allowed || d.Reason != ReasonProfessionalOnly {
		t.Errorf("member CreateAnswer = %+v, want deny(professional-only)", d)
	}
	if d := Authorize(professional(2), ActionCreateAnswer, 0); !d.Allowed {
		t.Errorf("professional CreateAnswer denied: %s", d.Reason)
	}
}

// TestAuthorize_Delete verifies ownership is the sole basis for deletion,
// for questions and answers alike.
func TestAuthorize_Delete(t *testing.T) {
	for _, action := range []Action{ActionDeleteQuestion, ActionDeleteAnswer} {
		if d := Authorize(nil, action, 1); d.Allowed {
			t.Errorf("unauthenticated delete %v allowed, want deny", action)
		}
		if d := Authorize(member(1), action, 1); !d.Allowed {
			t.Errorf("owner delete %v denied: %s", action, d.Reason)
		}
		if d := Authorize(member(2), action, 1); d.Allowed || d.Reason != ReasonNotOwner {
			t.Errorf("non-owner delete %v = %+v, want deny(not-owner-or-missing)", action, d)
		}
		// being professional grants no delete rights over others' posts
		if d := Authorize(professional(3), action, 1); d.Allowed {
			t.Errorf("professional non-owner delete %v allowed, want deny", action)
		}
	}
}
