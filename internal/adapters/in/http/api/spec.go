package api

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

var (
	swaggerOnce sync.Once
	swaggerDoc  *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed OpenAPI document. The document is parsed once
// and shared; callers must not mutate it.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		swaggerDoc, swaggerErr = loader.LoadFromData(openapiYAML)
		if swaggerErr != nil {
			swaggerErr = fmt.Errorf("error loading Swagger: %w", swaggerErr)
		}
	})
	return swaggerDoc, swaggerErr
}

// swaggerUI feeds the document to the Swagger UI served by echo-swagger.
type swaggerUI struct{}

func (swaggerUI) ReadDoc() string {
	doc, err := GetSwagger()
	if err != nil {
		return "{}"
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

func init() {
	swag.Register(swag.Name, swaggerUI{})
}
