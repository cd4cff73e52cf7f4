// Package logger は log/slog をベースにした構造化ロガーを提供します。
//
// 本番環境ではJSON、それ以外ではテキスト形式で標準出力へ出力します。
// リクエスト単位のロガーは middleware.AccessLog がcontextに格納し、FromContext で取り出します。
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// New は環境に応じたハンドラーでロガーを生成し、slog のデフォルトに設定します。
func New(env string) *slog.Logger {
	l := NewWithWriter(env, os.Stdout)
	slog.SetDefault(l)
	return l
}

// NewWithWriter は出力先を指定してロガーを生成します。デフォルトには設定しません。
func NewWithWriter(env string, w io.Writer) *slog.Logger {
	switch env {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

type ctxKey struct{}

// WithContext はロガーをcontextに格納します。
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext はcontextに格納されたロガーを返します。無ければデフォルトのロガーを返します。
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}
