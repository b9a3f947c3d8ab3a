package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface はAPIハンドラが実装するインターフェース
type ServerInterface interface {
	// GetHome はアプリケーションの状態を返す (GET /)
	GetHome(c *gin.Context)

	// HealthCheck はヘルスチェック (GET /health)
	HealthCheck(c *gin.Context)

	// GetData はサンプルデータを返す (GET /data)
	GetData(c *gin.Context)

	// Analyze は数値列の統計量を返す (POST /analyze)
	Analyze(c *gin.Context)

	// GetDate は現在時刻を複数の形式で返す (GET /utils/date)
	GetDate(c *gin.Context, params GetDateParams)

	// GetOpenAPI はAPIドキュメントを返す (GET /openapi.json)
	GetOpenAPI(c *gin.Context)
}

// ServerInterfaceWrapper はパラメータをバインドしてからハンドラを呼ぶ
type ServerInterfaceWrapper struct {
	Handler      ServerInterface
	ErrorHandler func(c *gin.Context, err error, statusCode int)
}

// GetDate は format クエリをバインドする
func (siw *ServerInterfaceWrapper) GetDate(c *gin.Context) {
	var params GetDateParams

	err := runtime.BindQueryParameter("form", true, false, "format", c.Request.URL.Query(), &params.Format)
	if err != nil {
		siw.ErrorHandler(c, errors.Wrap(err, "format"), http.StatusBadRequest)
		return
	}

	siw.Handler.GetDate(c, params)
}

// Route はルーティング表の1行
type Route struct {
	Method  string
	Path    string
	Handler func(w *ServerInterfaceWrapper) gin.HandlerFunc
}

// Routes は (メソッド, パス) とハンドラの対応表
var Routes = []Route{
	{http.MethodGet, "/", func(w *ServerInterfaceWrapper) gin.HandlerFunc { return w.Handler.GetHome }},
	{http.MethodGet, "/health", func(w *ServerInterfaceWrapper) gin.HandlerFunc { return w.Handler.HealthCheck }},
	{http.MethodGet, "/data", func(w *ServerInterfaceWrapper) gin.HandlerFunc { return w.Handler.GetData }},
	{http.MethodPost, "/analyze", func(w *ServerInterfaceWrapper) gin.HandlerFunc { return w.Handler.Analyze }},
	{http.MethodGet, "/utils/date", func(w *ServerInterfaceWrapper) gin.HandlerFunc { return w.GetDate }},
	{http.MethodGet, "/openapi.json", func(w *ServerInterfaceWrapper) gin.HandlerFunc { return w.Handler.GetOpenAPI }},
}

// GinServerOptions はハンドラ登録時のオプション
type GinServerOptions struct {
	ErrorHandler func(c *gin.Context, err error, statusCode int)
}

// RegisterHandlers はルーティング表の全ルートをルーターに登録する
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	RegisterHandlersWithOptions(router, si, GinServerOptions{})
}

// RegisterHandlersWithOptions はオプション付きで全ルートを登録する
// GETのルートにはHEADも登録する
func RegisterHandlersWithOptions(router gin.IRouter, si ServerInterface, options GinServerOptions) {
	errorHandler := options.ErrorHandler
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	wrapper := &ServerInterfaceWrapper{
		Handler:      si,
		ErrorHandler: errorHandler,
	}

	for _, r := range Routes {
		h := r.Handler(wrapper)
		router.Handle(r.Method, r.Path, h)
		if r.Method == http.MethodGet {
			router.Handle(http.MethodHead, r.Path, h)
		}
	}
}

// defaultErrorHandler はパラメータのバインドエラーを ErrorResponse で返す
func defaultErrorHandler(c *gin.Context, err error, statusCode int) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   ErrMsgInvalidQuery,
		Message: StringPtr(err.Error()),
	})
}
