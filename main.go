package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"sbomexample/internal/config"
	"sbomexample/internal/logger"
	"sbomexample/internal/server"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %+v", err)
	}

	// ロガーを作成
	zl, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("ロガーの作成に失敗しました: %+v", err)
	}
	defer func() { _ = zl.Sync() }()

	// サーバーを作成
	srv, err := server.New(cfg)
	if err != nil {
		zl.Fatal("サーバーの作成に失敗しました", zap.Error(err))
	}

	// サーバーを起動
	if err := srv.Start(context.Background()); err != nil {
		zl.Fatal("サーバーの起動に失敗しました", zap.Error(err))
	}
}
