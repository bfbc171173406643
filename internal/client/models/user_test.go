package models

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserProfile_Identifies(t *testing.T) {
	assert.True(t, UserProfile{ID: "u1"}.Identifies())
	assert.True(t, UserProfile{Email: "a@b.c"}.Identifies())
	assert.False(t, UserProfile{Name: "only a name"}.Identifies())
	assert.False(t, UserProfile{ID: "  "}.Identifies())
}

func TestUserProfile_Merge_KeepsPriorValuesForMissingFields(t *testing.T) {
	prior := UserProfile{ID: "u1", Name: "Alice", Email: "alice@example.com", IsFallback: true}

	got := prior.Merge(UserProfile{ID: "u1", Name: "Alice Smith"})

	assert.Equal(t, UserProfile{ID: "u1", Name: "Alice Smith", Email: "alice@example.com", IsFallback: false}, got)
}

func TestUserProfile_Merge_EmptyUpdateIsNoop(t *testing.T) {
	prior := UserProfile{ID: "u1", Name: "Alice", IsFallback: true}
	assert.Equal(t, prior, prior.Merge(UserProfile{}))
}

func TestUserProfile_LogValue_OmitsEmail(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	l.Info("user", "profile", UserProfile{ID: "u1", Name: "Alice", Email: "alice@example.com"})

	out := buf.String()
	assert.Contains(t, out, "profile.id=u1")
	assert.NotContains(t, out, "alice@example.com")
}
