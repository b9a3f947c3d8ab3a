// Package api はHTTP APIのスキーマとルーティング表を定義します。
//
// 責務:
//   - リクエスト/レスポンスのJSONスキーマ（Go構造体）
//   - ハンドラが実装すべき ServerInterface
//   - (メソッド, パス) からハンドラへの静的なルーティング表
//   - 埋め込まれたOpenAPI 3ドキュメントの読み込みと検証
//
// 仕様:
//   - JSONへの変換は構造体タグで明示する
//   - openapi.yaml はここで定義した構造体と一致させる
package api
