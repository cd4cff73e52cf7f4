// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
// 検証はユースケース側で行うため、binding タグは付けません。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse はログイン成功時のレスポンスです。
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
