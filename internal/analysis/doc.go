// Package analysis は数値列の基本統計量を計算します。
//
// 責務:
//   - 算術平均、中央値、母標準偏差、最小値、最大値の計算
//
// 仕様:
//   - 中央値はソート済み列の中央。要素数が偶数の場合は中央2要素の平均
//   - 標準偏差は母標準偏差（Nで割る）
//   - 入力スライスは変更しない
//   - 空の列と、結果が有限値にならない列はエラーとする
package analysis
