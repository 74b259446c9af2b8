package consts

const (
	// TokenBlockKey 已注销 Token 签名黑名单
	TokenBlockKey = "token:block:"
)
