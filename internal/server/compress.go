package server

import (
	"compress/gzip"
	"compress/zlib"
	"net/http"

	"github.com/CAFxX/httpcompression"
	"github.com/andybalholm/brotli"
	"github.com/cockroachdb/errors"

	"sbomexample/internal/config"
)

// compressionAdapter はAccept-Encodingに応じてレスポンスを圧縮するラッパーを返す
// 優先順位は br, gzip, deflate の順
func compressionAdapter(cfg config.CompressionConfig) (func(http.Handler) http.Handler, error) {
	adapter, err := httpcompression.Adapter(
		httpcompression.BrotliCompressionLevel(brotli.DefaultCompression),
		httpcompression.GzipCompressionLevel(gzip.DefaultCompression),
		httpcompression.DeflateCompressionLevel(zlib.DefaultCompression),
		httpcompression.MinSize(cfg.MinSize),
	)
	if err != nil {
		return nil, errors.Wrap(err, "圧縮ミドルウェアの初期化に失敗")
	}
	return adapter, nil
}
