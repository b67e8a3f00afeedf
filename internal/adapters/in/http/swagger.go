package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerDocOnce sync.Once

// swaggerDoc serves the OpenAPI document to the swagger UI.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

// RegisterSwagger exposes the OpenAPI document and the swagger UI under /swagger/.
func RegisterSwagger(e *echo.Echo, doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
