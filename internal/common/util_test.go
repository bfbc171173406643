package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "bob", EmailLocalPart("bob@example.com"))
	assert.Equal(t, "first.last", EmailLocalPart("first.last@corp.example.org"))
	assert.Equal(t, "plain", EmailLocalPart("plain"))
	assert.Equal(t, "", EmailLocalPart("@example.com"))
}

func TestTokenKeys_PreferTokenOverAccessToken(t *testing.T) {
	assert.Equal(t, []string{"token", "accessToken"}, TokenKeys)
}
