package midtrans

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// Signature computes the notification signature:
// sha512(order_id + status_code + gross_amount + server_key).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(h[:])
}

// VerifySignature checks the signature_key of a raw notification payload.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, provided string) bool {
	if provided == "" {
		return false
	}
	return strings.EqualFold(Signature(orderID, statusCode, grossAmount, serverKey), provided)
}
