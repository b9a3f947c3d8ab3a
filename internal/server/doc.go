// Package server は、HTTPサーバーとAPIハンドラを管理します。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// ミドルウェア、各エンドポイントの処理を担当します。
//
// 責務:
//   - HTTPサーバーの起動とグレースフルシャットダウン
//   - api.Routes に従ったルーティング
//   - リクエストID、アクセスログ、パニックからの復帰
//   - セキュリティヘッダー、CORS、レスポンス圧縮
//   - Prometheusメトリクスの収集と公開
//
// 仕様:
//   - ルーターはgin-gonic/ginを使用
//   - ハンドラはリクエストをまたいだ状態を持たない
//   - 未定義のパスは404、定義済みパスへの異なるメソッドは405をJSONで返す
package server
