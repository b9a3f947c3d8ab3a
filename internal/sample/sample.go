// Package sample は /data エンドポイント用のサンプルレコードを生成する
package sample

import (
	"fmt"
	"math/rand/v2"
)

// DefaultCount は1回に生成するレコード数
const DefaultCount = 10

// Record はサンプルデータの1件
type Record struct {
	ID    int     // 1から始まる連番
	Value float64 // [0, 1) の一様乱数
	Label string  // "Item {ID}"
}

// Generator はサンプルレコードを生成する
type Generator struct {
	float func() float64
}

// NewGenerator は新しいGeneratorを作成する
// float が nil の場合はmath/rand/v2のグローバル乱数を使う（並行利用可）
func NewGenerator(float func() float64) *Generator {
	if float == nil {
		float = rand.Float64
	}
	return &Generator{float: float}
}

// Generate はn件のレコードを生成する
func (g *Generator) Generate(n int) []Record {
	if n < 0 {
		n = 0
	}

	records := make([]Record, 0, n)
	for id := 1; id <= n; id++ {
		records = append(records, Record{
			ID:    id,
			Value: g.float(),
			Label: Label(id),
		})
	}
	return records
}

// Label はIDに対応するラベルを返す
func Label(id int) string {
	return fmt.Sprintf("Item %d", id)
}
