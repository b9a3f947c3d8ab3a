package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"sbomexample/internal/analysis"
	"sbomexample/internal/api"
	"sbomexample/internal/config"
	"sbomexample/internal/datefmt"
	"sbomexample/internal/sample"
)

// timestampLayout はGET / が返すISO-8601形式
const timestampLayout = "2006-01-02T15:04:05.000000"

// isoMillisLayout はGET /utils/date の iso フィールドの形式
const isoMillisLayout = "2006-01-02T15:04:05.000Z"

// APIHandler はapi.ServerInterfaceを実装する
type APIHandler struct {
	config    *config.Config
	spec      *openapi3.T
	generator *sample.Generator
	metrics   *Metrics

	// テスト用に差し替え可能な時計
	now func() time.Time
}

func (h *APIHandler) clock() time.Time {
	if h.now != nil {
		return h.now()
	}
	return time.Now()
}

// GetHome はアプリケーションの稼働状態を返す
func (h *APIHandler) GetHome(c *gin.Context) {
	response := api.HomeResponse{
		Message:   h.config.App.Name + " is running!",
		Version:   h.config.App.Version,
		Timestamp: h.clock().Format(timestampLayout),
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *APIHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: api.HealthStatusOK})
}

// GetData はサンプルデータを返す
func (h *APIHandler) GetData(c *gin.Context) {
	records := h.generator.Generate(sample.DefaultCount)

	data := make([]api.DataRecord, 0, len(records))
	for _, r := range records {
		data = append(data, api.DataRecord{
			ID:    r.ID,
			Value: r.Value,
			Label: r.Label,
		})
	}

	c.JSON(http.StatusOK, api.DataResponse{
		Data:  data,
		Count: len(data),
	})
}

// Analyze は数値列の基本統計量を返す
func (h *APIHandler) Analyze(c *gin.Context) {
	req, err := bindAnalysisRequest(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	h.metrics.ObserveSampleSize(len(req.Numbers))

	result, err := analysis.Analyze(req.Numbers)
	if err != nil {
		// 空の列、有限値にならない列
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, api.AnalysisResult{
		Mean:   result.Mean,
		Median: result.Median,
		Std:    result.Std,
		Min:    result.Min,
		Max:    result.Max,
	})
}

// GetDate は現在時刻を複数の形式で返す
// format が指定された場合は current と utc をその形式で整形する
func (h *APIHandler) GetDate(c *gin.Context, params api.GetDateParams) {
	layout := time.RFC3339
	if params.Format != nil && *params.Format != "" {
		l, err := datefmt.Layout(*params.Format)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{
				Error:   api.ErrMsgUnsupportedFormat,
				Message: api.StringPtr(err.Error()),
			})
			return
		}
		layout = l
	}

	now := h.clock()

	c.JSON(http.StatusOK, api.DateResponse{
		Current: now.Format(layout),
		UTC:     now.UTC().Format(layout),
		Unix:    now.Unix(),
		ISO:     now.UTC().Format(isoMillisLayout),
	})
}

// GetOpenAPI は読み込み済みのAPIドキュメントを返す
func (h *APIHandler) GetOpenAPI(c *gin.Context) {
	c.JSON(http.StatusOK, h.spec)
}

// handleNotFound は未定義のパスへのリクエストを処理する
func handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, api.ErrorResponse{
		Error: api.ErrMsgNotFound,
		Path:  api.StringPtr(c.Request.URL.Path),
	})
}

// handleMethodNotAllowed は定義済みのパスに異なるメソッドで来たリクエストを処理する
func handleMethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, api.ErrorResponse{
		Error: api.ErrMsgMethodNotAllow,
		Path:  api.StringPtr(c.Request.URL.Path),
	})
}

// ヘルパー関数

// abortWithError はエラーレスポンスを返して後続の処理を止める
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: message})
}

// errNumbersType は numbers の値が数値の配列として読めなかったことを示す
var errNumbersType = errors.New("numbers is not an array of numbers")

// bindAnalysisRequest はボディから numbers を取り出す
// キーは大文字小文字を区別して照合する
func bindAnalysisRequest(c *gin.Context) (api.AnalysisRequest, error) {
	var req api.AnalysisRequest

	var fields map[string]json.RawMessage
	if err := c.ShouldBindJSON(&fields); err != nil {
		return req, err
	}

	if raw, ok := fields["numbers"]; ok {
		if err := json.Unmarshal(raw, &req.Numbers); err != nil {
			return req, errors.Mark(errors.Wrap(err, "numbers"), errNumbersType)
		}
	}

	// numbers が欠けている、または null なら required で弾かれる
	return req, binding.Validator.ValidateStruct(&req)
}

// bindErrorMessage はリクエストボディのバインドエラーをクライアント向けのメッセージに変換する
func bindErrorMessage(err error) string {
	var (
		validationErrs validator.ValidationErrors
		typeErr        *json.UnmarshalTypeError
	)

	switch {
	case errors.Is(err, errNumbersType):
		return api.ErrMsgNumbersType
	case errors.Is(err, io.EOF):
		// ボディが空
		return api.ErrMsgNumbersRequired
	case errors.As(err, &validationErrs):
		return api.ErrMsgNumbersRequired
	case errors.As(err, &typeErr):
		// オブジェクト以外のJSON（配列など）には numbers が存在しない
		return api.ErrMsgNumbersRequired
	default:
		return api.ErrMsgInvalidJSON
	}
}
