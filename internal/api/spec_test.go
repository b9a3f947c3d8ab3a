package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSpec(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "SBOM Example Application", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
}

// TestSpecCoversRoutes はルーティング表の全ルートがドキュメントに記載されていることを確認する
func TestSpecCoversRoutes(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)

	for _, r := range Routes {
		item := doc.Paths.Value(r.Path)
		require.NotNil(t, item, "path %s is not documented", r.Path)
		assert.NotNil(t, item.GetOperation(r.Method), "%s %s is not documented", r.Method, r.Path)
	}
	assert.Equal(t, len(Routes), doc.Paths.Len())
}

type stubServer struct {
	dateParams *GetDateParams
}

func (*stubServer) GetHome(c *gin.Context) { c.Status(http.StatusNoContent) }
func (*stubServer) HealthCheck(c *gin.Context) { c.Status(http.StatusNoContent) }
func (*stubServer) GetData(c *gin.Context) { c.Status(http.StatusNoContent) }
func (*stubServer) Analyze(c *gin.Context) { c.Status(http.StatusNoContent) }
func (*stubServer) GetOpenAPI(c *gin.Context) { c.Status(http.StatusNoContent) }

func (s *stubServer) GetDate(c *gin.Context, params GetDateParams) {
	s.dateParams = &params
	c.Status(http.StatusNoContent)
}

func newStubEngine(si ServerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterHandlers(engine, si)
	return engine
}

func TestRegisterHandlers(t *testing.T) {
	engine := newStubEngine(&stubServer{})

	registered := make(map[string]bool)
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	expected := 0
	for _, r := range Routes {
		assert.True(t, registered[r.Method+" "+r.Path], "%s %s is not registered", r.Method, r.Path)
		expected++

		// GETのルートはHEADでも応答する
		if r.Method == http.MethodGet {
			assert.True(t, registered[http.MethodHead+" "+r.Path], "HEAD %s is not registered", r.Path)
			expected++
		}
	}
	assert.Len(t, engine.Routes(), expected)
}

func TestHeadRequest(t *testing.T) {
	engine := newStubEngine(&stubServer{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/health", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// TestGetDateParams は format クエリのバインドをテストする
func TestGetDateParams(t *testing.T) {
	testCases := []struct {
		name       string
		query      string
		wantStatus int
		wantFormat *string
	}{
		{"指定なし", "", http.StatusNoContent, nil},
		{"指定あり", "?format=YYYY-MM-DD", http.StatusNoContent, StringPtr("YYYY-MM-DD")},
		{"空文字", "?format=", http.StatusNoContent, StringPtr("")},
		{"エンコードされた空白", "?format=HH%3Amm%20ss", http.StatusNoContent, StringPtr("HH:mm ss")},
		{"複数指定", "?format=YYYY&format=MM", http.StatusBadRequest, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubServer{}
			engine := newStubEngine(stub)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/utils/date"+tc.query, nil))
			require.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus != http.StatusNoContent {
				assert.Nil(t, stub.dateParams, "handler must not be called")

				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, ErrMsgInvalidQuery, resp.Error)
				assert.NotNil(t, resp.Message)
				return
			}

			require.NotNil(t, stub.dateParams)
			assert.Equal(t, tc.wantFormat, stub.dateParams.Format)
		})
	}
}
