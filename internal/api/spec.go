package api

import (
	"context"
	_ "embed"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// SpecYAML は埋め込まれたOpenAPIドキュメント（YAML）を返す
func SpecYAML() []byte {
	return specYAML
}

// LoadSpec は埋め込まれたOpenAPIドキュメントを読み込み、検証する
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, errors.Wrap(err, "OpenAPIドキュメントの読み込みに失敗")
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, errors.Wrap(err, "OpenAPIドキュメントの検証に失敗")
	}

	return doc, nil
}
