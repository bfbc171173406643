package logging

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	assert.Equal(t, "", Redact(""))
	assert.Equal(t, "***", Redact("abc"))
	assert.Equal(t, "eyJhbG...", Redact("eyJhbGciOiJIUzI1NiJ9.payload.sig"))
}

func TestRedactor_MasksByDefault(t *testing.T) {
	r := Redactor{}

	assert.Equal(t, "tok123...", r.Token("tok1234567"))
	assert.Equal(t, "b***@example.com", r.Email("bob@example.com"))
	assert.Equal(t, "***", r.Email("nobody"))
}

func TestRedactor_RevealPassesThrough(t *testing.T) {
	r := Redactor{Reveal: true}

	assert.Equal(t, "tok1234567", r.Token("tok1234567"))
	assert.Equal(t, "bob@example.com", r.Email("bob@example.com"))
}

func TestRedactor_KeepsMultibyteCharactersWhole(t *testing.T) {
	r := Redactor{}

	masked := r.Email("élodie@example.com")
	assert.Equal(t, "é***@example.com", masked)
	assert.True(t, utf8.ValidString(masked))

	assert.Equal(t, "日本語トーク...", Redact("日本語トークンです"))
	assert.Equal(t, "***", Redact("日本語"))
	assert.True(t, utf8.ValidString(Redact("ééééééé")))
}
