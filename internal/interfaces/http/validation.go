package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	// gte/gt sobre montos comparan el valor numérico.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// parseBody decodifica el JSON y valida las etiquetas; si falla ya escribió la respuesta 400
// y devuelve errResponded para que el handler solo retorne.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		_ = badRequest(c, "INVALID_BODY", "cuerpo inválido: "+err.Error())
		return errResponded
	}
	if err := validate.Struct(dest); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fieldPath(fe)] = validationMessage(fe)
			}
			_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: fields})
			return errResponded
		}
		_ = badRequest(c, "VALIDATION", err.Error())
		return errResponded
	}
	return nil
}

var errResponded = errors.New("respuesta ya enviada")

// fieldPath quita el nombre del struct raíz: "CreateInvoiceRequest.productos[0].cantidad" -> "productos[0].cantidad".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "min":
		return fmt.Sprintf("mínimo %s", fe.Param())
	case "max":
		return fmt.Sprintf("máximo %s", fe.Param())
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	}
	return "no es válido"
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = badRequest(c, "INVALID_ID", "id debe ser un entero positivo")
		return 0, false
	}
	return int64(id), true
}

// pageFromQuery lee limit/offset.
func pageFromQuery(c *fiber.Ctx) (dto.PageRequest, bool) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		_ = badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
		return p, false
	}
	if err := validate.Struct(p); err != nil {
		_ = badRequest(c, "INVALID_PARAMS", "limit debe estar entre 0 y 500 y offset no puede ser negativo")
		return p, false
	}
	return p, true
}
