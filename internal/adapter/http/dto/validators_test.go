package dto

import (
	"testing"
	"time"

	"account-ledger/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStruct_TrimsAndEscapes(t *testing.T) {
	req := SignInRequest{
		Email:    "  alice@example.com  ",
		Password: `pass<script>`,
	}
	SanitizeStruct(&req)

	assert.Equal(t, "alice@example.com", req.Email)
	assert.Equal(t, "pass&lt;script&gt;", req.Password)
}

func TestSanitizeStruct_PointerFields(t *testing.T) {
	type form struct {
		Note *string
	}
	note := "  <b>hi</b>  "
	f := form{Note: &note}
	SanitizeStruct(&f)

	assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", *f.Note)
}

func TestSanitizeStruct_NonStructIsNoop(t *testing.T) {
	s := "unchanged"
	SanitizeStruct(&s)
	assert.Equal(t, "unchanged", s)
}

func TestNewTransactionResponses_EmptyNotNil(t *testing.T) {
	out := NewTransactionResponses(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestNewUserResponse(t *testing.T) {
	u := &domain.User{
		ID:        42,
		Email:     "alice@example.com",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	resp := NewUserResponse(u)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, "2026-03-01T10:00:00Z", resp.CreatedAt)
}
