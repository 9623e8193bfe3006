package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature 校验支付完成回调的签名。
// 消息固定为 "网关订单号|支付流水号"，与网关侧的计算方式保持一致，
// 比较使用 hmac.Equal 防止时序侧信道。
func VerifySignature(intentID, paymentID, providedSignature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(intentID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}

// Sign 按同样的规则生成签名，测试和本地联调用
func Sign(intentID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(intentID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
