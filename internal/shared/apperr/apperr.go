// Package apperr はフィーチャー横断で使用するエラー分類とHTTPステータスへの対応付けを提供します。
package apperr

import (
	"errors"
	"net/http"
)

// エラー種別を表すセンチネルエラー。
// フィーチャー固有のエラーはこれらをラップし、errors.Is で種別を判定します。
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
)

// Error はクライアントに返却してよいメッセージと種別を持つエラーです。
type Error struct {
	kind error
	msg  string
}

// New は指定した種別とメッセージでErrorを生成します。
func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap は種別のセンチネルエラーを返します。
func (e *Error) Unwrap() error { return e.kind }

// ValidationError はエンティティのバリデーション違反を表します。
// Field は違反したフィールド名、Reason は人が読める理由です。
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError はValidationErrorを生成します。
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

// Unwrap はValidationErrorを入力不正として扱わせます。
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// HTTPStatus はエラー種別に対応するHTTPステータスコードを返します。
// 認証失敗は既存クライアントとの互換性のため400を返します。
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnauthorized):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError はエラーがクライアント起因（5xx以外）かを判定します。
func IsClientError(err error) bool {
	return HTTPStatus(err) < http.StatusInternalServerError
}
