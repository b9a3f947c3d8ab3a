package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"sbomexample/internal/api"
)

// HeaderRequestID はリクエストIDを運ぶヘッダー
const HeaderRequestID = "X-Request-ID"

const contextKeyRequestID = "request_id"

// requestID はリクエストIDを払い出し、レスポンスヘッダーとコンテキストに設定する
// クライアントが X-Request-ID を送ってきた場合はそれを使う
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Set(contextKeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// requestIDFrom はコンテキストからリクエストIDを取り出す
func requestIDFrom(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// accessLogger はリクエストごとに1行のアクセスログを出力する
func accessLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", requestIDFrom(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// recovery はハンドラのパニックを500レスポンスに変換する
// withStack が true の場合はレスポンスにスタックトレースを含める
func recovery(log *zap.Logger, withStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// クライアント切断による中断はnet/httpに任せる
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			stack := string(debug.Stack())
			log.Error("パニックから復帰しました",
				zap.Any("panic", rec),
				zap.String("request_id", requestIDFrom(c)),
				zap.String("stack", stack),
			)

			response := api.ErrorResponse{
				Error:   api.ErrMsgInternal,
				Message: api.StringPtr(fmt.Sprint(rec)),
			}
			if withStack {
				response.Stack = &stack
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response)
		}()

		c.Next()
	}
}

// securityHeaders は一般的なセキュリティ関連ヘッダーを付与する
func securityHeaders() gin.HandlerFunc {
	sec := secure.New(secure.Options{
		ContentTypeNosniff:      true,
		CustomFrameOptionsValue: "SAMEORIGIN",
		ReferrerPolicy:          "no-referrer",
		XDNSPrefetchControl:     "off",
	})

	return func(c *gin.Context) {
		if err := sec.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	}
}

// corsMiddleware は全オリジンからのアクセスを許可し、プリフライトに204で応答する
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowHeaders:  []string{"Origin", "Content-Type", HeaderRequestID},
		ExposeHeaders: []string{HeaderRequestID},
		MaxAge:        12 * time.Hour,
	})
}
