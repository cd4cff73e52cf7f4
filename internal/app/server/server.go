// Package server はHTTPサーバーの起動とグレースフルシャットダウンを扱います。
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultShutdownTimeout は処理中のリクエストを待つ最大時間です。
	DefaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

// Server はhttp.Serverをラップし、ctxのキャンセルで停止します。
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

// New はaddrでhandlerを公開するServerを生成します。
func New(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// Run はaddrでlistenし、ctxが終了するまでリクエストを処理します。
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve は与えられたリスナーでリクエストを処理します。
// ctxが終了するとシャットダウンし、処理中のリクエストを待ってからnilを返します。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
