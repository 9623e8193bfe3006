package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedSignature(t *testing.T, intentID, paymentID, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(intentID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	sig := expectedSignature(t, "order_123", "pay_456", "topsecret")
	assert.True(t, VerifySignature("order_123", "pay_456", sig, "topsecret"))
}

func TestVerifySignature_SignMatchesVerify(t *testing.T) {
	sig := Sign("order_abc", "pay_def", "s3cret")
	require.NotEmpty(t, sig)
	assert.True(t, VerifySignature("order_abc", "pay_def", sig, "s3cret"))
}

func TestVerifySignature_MutatedSignature(t *testing.T) {
	sig := Sign("order_123", "pay_456", "topsecret")

	// 翻转签名任一字符都应失败
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		assert.False(t, VerifySignature("order_123", "pay_456", string(mutated), "topsecret"),
			"mutated signature at index %d should not verify", i)
	}
}

func TestVerifySignature_MutatedFields(t *testing.T) {
	sig := Sign("order_123", "pay_456", "topsecret")

	assert.False(t, VerifySignature("order_124", "pay_456", sig, "topsecret"))
	assert.False(t, VerifySignature("order_123", "pay_457", sig, "topsecret"))
	assert.False(t, VerifySignature("order_123", "pay_456", sig, "topsecreT"))
}

func TestVerifySignature_FieldOrderMatters(t *testing.T) {
	// 消息为 intentID|paymentID，字段调换后签名不同
	sig := Sign("order_123", "pay_456", "topsecret")
	assert.False(t, VerifySignature("pay_456", "order_123", sig, "topsecret"))
}

func TestVerifySignature_EmptyInputs(t *testing.T) {
	assert.False(t, VerifySignature("", "", "", "topsecret"))
	assert.True(t, VerifySignature("", "", Sign("", "", "topsecret"), "topsecret"))
}
