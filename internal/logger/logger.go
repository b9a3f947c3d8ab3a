// Package logger はアプリケーション全体で使うzapロガーを構築する
package logger

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// New はロガーを作成し、zapのグローバルロガーとして登録する
// debug が true の場合は開発用の設定（コンソール形式、Debugレベル、スタックトレース付き）を使う
func New(debug bool) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, errors.Wrap(err, "ロガーの作成に失敗")
	}

	zap.ReplaceGlobals(log)
	return log, nil
}
