package midtrans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	sig := Signature("order-1", "200", "65000.00", "server-key")

	assert.True(t, VerifySignature("order-1", "200", "65000.00", "server-key", sig))
}

func TestVerifySignature_Rejects(t *testing.T) {
	sig := Signature("order-1", "200", "65000.00", "server-key")

	assert.False(t, VerifySignature("order-2", "200", "65000.00", "server-key", sig), "different order")
	assert.False(t, VerifySignature("order-1", "201", "65000.00", "server-key", sig), "different status code")
	assert.False(t, VerifySignature("order-1", "200", "1.00", "server-key", sig), "different amount")
	assert.False(t, VerifySignature("order-1", "200", "65000.00", "other-key", sig), "different key")
	assert.False(t, VerifySignature("order-1", "200", "65000.00", "server-key", ""), "empty signature")
}

func TestVerifySignature_CaseInsensitive(t *testing.T) {
	sig := Signature("order-1", "200", "65000.00", "server-key")

	upper := make([]byte, len(sig))
	for i := 0; i < len(sig); i++ {
		c := sig[i]
		if c >= 'a' && c <= 'f' {
			c = c - 'a' + 'A'
		}
		upper[i] = c
	}
	assert.True(t, VerifySignature("order-1", "200", "65000.00", "server-key", string(upper)))
}
