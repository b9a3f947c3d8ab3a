// Package main はSBOMサンプルアプリケーションのサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"sbomexample/internal/config"
	"sbomexample/internal/logger"
	"sbomexample/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		host  = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port  = flag.Int("port", 0, "サーバーのポート (デフォルト: 5000)")
		debug = flag.Bool("debug", false, "開発モードで起動する")
		help  = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("SBOM Example Application")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("環境変数:")
		fmt.Println("  PORT, APP_HOST, DEBUG, APP_VERSION, CONFIG_FILE")
		os.Exit(0)
	}

	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %+v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %+v", err)
	}

	zl, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("ロガーの作成に失敗しました: %+v", err)
	}
	defer func() { _ = zl.Sync() }()

	srv, err := server.New(cfg)
	if err != nil {
		zl.Fatal("サーバーの作成に失敗しました", zap.Error(err))
	}

	// サーバーを起動
	zl.Info("SBOM Example Application を起動します",
		zap.String("addr", cfg.ServerAddress()),
		zap.String("version", cfg.App.Version),
		zap.Bool("debug", cfg.Debug),
	)
	if err := srv.Start(context.Background()); err != nil {
		zl.Fatal("サーバーの起動に失敗しました", zap.Error(err))
	}
}
