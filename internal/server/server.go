package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sbomexample/internal/api"
	"sbomexample/internal/config"
	"sbomexample/internal/sample"
)

// ErrServerStarted は起動済みのServerでStartを呼んだ場合に返る
var ErrServerStarted = errors.New("サーバーは既に起動されています")

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	engine     *gin.Engine
	httpServer *http.Server
	handler    http.Handler
	metrics    *Metrics
	log        *zap.Logger

	// リッスン開始後に閉じられる
	ready    chan struct{}
	mu       sync.RWMutex
	started  bool
	listener net.Listener
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config) (*Server, error) {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	spec, err := api.LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	s := &Server{
		config:  cfg,
		engine:  engine,
		handler: engine,
		metrics: NewMetrics(),
		log:     zap.L().With(zap.String("module", "server")),
		ready:   make(chan struct{}),
	}

	handler := &APIHandler{
		config:    cfg,
		spec:      spec,
		generator: sample.NewGenerator(nil),
		metrics:   s.metrics,
	}
	s.setupRoutes(handler)

	// 圧縮はginの外側で行う
	if cfg.Compression.Enabled {
		compress, err := compressionAdapter(cfg.Compression)
		if err != nil {
			return nil, err
		}
		s.handler = compress(engine)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      s.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s, nil
}

// setupRoutes はミドルウェアとHTTPルートを設定する
func (s *Server) setupRoutes(handler api.ServerInterface) {
	s.engine.Use(
		requestID(),
		accessLogger(s.log),
		s.metrics.Middleware(),
		securityHeaders(),
		corsMiddleware(),
		recovery(s.log, s.config.Debug),
	)

	api.RegisterHandlers(s.engine, handler)

	// メトリクスエンドポイント
	if s.config.Metrics.Enabled {
		s.engine.GET(s.config.Metrics.Path, gin.WrapH(s.metrics.Handler()))
	}

	s.engine.NoRoute(handleNotFound)
	s.engine.NoMethod(handleMethodNotAllowed)
}

// Handler はルーティング済みのhttp.Handlerを返す
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Ready はリッスン開始後に閉じられるチャンネルを返す
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr は実際にリッスンしているアドレスを返す。リッスン前は空文字
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start はサーバーを起動する
// コンテキストのキャンセルかSIGINT/SIGTERMを受けるとグレースフルにシャットダウンする
// 2回目以降の呼び出しは ErrServerStarted を返す
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrServerStarted
	}
	s.started = true
	s.mu.Unlock()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return errors.Wrapf(err, "サーバーの起動に失敗: %s", s.httpServer.Addr)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	close(s.ready)

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		s.log.Info("HTTPサーバーを起動しています", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- errors.Wrap(err, "サーバーの実行に失敗")
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		s.log.Info("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		s.log.Info("シグナルを受信しました", zap.Stringer("signal", sig))
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	s.log.Info("サーバーをシャットダウンしています")

	ctx := context.Background()
	if timeout := s.config.Server.ShutdownTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "サーバーのシャットダウンに失敗")
	}

	s.log.Info("サーバーが正常にシャットダウンされました")
	return nil
}
