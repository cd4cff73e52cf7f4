package dto

// RegisterReq は/registerエンドポイントのリクエストボディを表します。
type RegisterReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse は成功メッセージのみを返すレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse は認証系エンドポイントのエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}
