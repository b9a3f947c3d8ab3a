package analysis

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"
)

var (
	// ErrEmptySample は空の数値列が渡された場合のエラー
	ErrEmptySample = errors.New("numbers must not be empty")

	// ErrNonFinite は計算結果がInfまたはNaNになった場合のエラー
	ErrNonFinite = errors.New("numbers produce a non-finite result")
)

// Result は数値列の統計量
type Result struct {
	Mean   float64 // 算術平均
	Median float64 // 中央値
	Std    float64 // 母標準偏差
	Min    float64 // 最小値
	Max    float64 // 最大値
}

// Analyze は数値列の統計量を計算する
func Analyze(numbers []float64) (Result, error) {
	n := len(numbers)
	if n == 0 {
		return Result{}, ErrEmptySample
	}

	// ソートは複製に対して行う
	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)

	mean := Mean(numbers)

	var sumsq float64
	for _, v := range sorted {
		d := v - mean
		sumsq += d * d
	}

	result := Result{
		Mean:   mean,
		Median: medianOfSorted(sorted),
		Std:    math.Sqrt(sumsq / float64(n)),
		Min:    sorted[0],
		Max:    sorted[n-1],
	}

	if !isFinite(result.Mean) || !isFinite(result.Median) || !isFinite(result.Std) {
		return Result{}, ErrNonFinite
	}

	return result, nil
}

// Mean は算術平均を返す。空の場合は0
func Mean(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}
	var sum float64
	for _, v := range numbers {
		sum += v
	}
	return sum / float64(len(numbers))
}

// medianOfSorted はソート済みの列の中央値を返す
func medianOfSorted(s []float64) float64 {
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2.0
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
