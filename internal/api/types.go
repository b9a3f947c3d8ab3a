package api

// HealthStatusOK はヘルスチェックが返す唯一のステータス
const HealthStatusOK = "OK"

// エラーメッセージ
const (
	ErrMsgNumbersRequired = "numbers field is required"
	ErrMsgNumbersType     = "numbers must be an array of numbers"
	ErrMsgInvalidJSON     = "invalid JSON body"
	ErrMsgNotFound        = "Not Found"
	ErrMsgMethodNotAllow  = "Method Not Allowed"
	ErrMsgInternal        = "Something went wrong!"

	ErrMsgInvalidQuery      = "invalid query parameter"
	ErrMsgUnsupportedFormat = "unsupported date format"
)

// HomeResponse は GET / のレスポンス
type HomeResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"` // ISO-8601 (YYYY-MM-DDTHH:MM:SS.ffffff)
}

// HealthResponse は GET /health のレスポンス
type HealthResponse struct {
	Status string `json:"status"`
}

// DataRecord はサンプルデータの1件
type DataRecord struct {
	ID    int     `json:"id"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// DataResponse は GET /data のレスポンス
type DataResponse struct {
	Data  []DataRecord `json:"data"`
	Count int          `json:"count"`
}

// AnalysisRequest は POST /analyze のリクエスト
// numbers が欠けている、または null の場合はバリデーションエラーになる
type AnalysisRequest struct {
	Numbers []float64 `json:"numbers" binding:"required"`
}

// AnalysisResult は POST /analyze のレスポンス
type AnalysisResult struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GetDateParams は GET /utils/date のクエリパラメータ
type GetDateParams struct {
	// Format はmoment.js形式のフォーマット（例: YYYY-MM-DD HH:mm:ss）
	Format *string `form:"format,omitempty" json:"format,omitempty"`
}

// DateResponse は GET /utils/date のレスポンス
type DateResponse struct {
	Current string `json:"current"` // ローカル時刻（既定はRFC3339）
	UTC     string `json:"utc"`     // UTC時刻（既定はRFC3339）
	Unix    int64  `json:"unix"`    // UNIX秒
	ISO     string `json:"iso"`     // UTC、ミリ秒精度、Z付き
}

// ErrorResponse はエラー時の共通レスポンス
type ErrorResponse struct {
	Error   string  `json:"error"`
	Message *string `json:"message,omitempty"`
	Path    *string `json:"path,omitempty"`
	Stack   *string `json:"stack,omitempty"` // デバッグモード時のみ
}

// StringPtr は文字列のポインタを返すヘルパー関数
func StringPtr(s string) *string {
	return &s
}
