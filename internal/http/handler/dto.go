package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// contactRequest is the body of POST /contacts and POST /contacts/upsert.
type contactRequest struct {
	Name   string `json:"name" validate:"required" example:"Ada Lovelace"`
	Number string `json:"number" validate:"required" example:"39-44-5323523"`
}

// updateRequest is the body of PUT /contacts/{id}. Omitting name keeps the current one.
type updateRequest struct {
	Number string  `json:"number" validate:"required" example:"39-44-5323523"`
	Name   *string `json:"name,omitempty" validate:"omitnil,min=1" example:"Ada King"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON decodes and validates the request body into dst and writes the 400 response
// itself. ok is false when the handler must stop.
func bindJSON(c *fiber.Ctx, dst any) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		if errors.Is(err, fiber.ErrUnprocessableEntity) {
			return false, writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "content type must be application/json")
		}
		return false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, "FIELD_MISSING", validationMessage(err))
	}
	return true, nil
}

// validationMessage renders validator errors as "field missing: name, number".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "field missing: " + strings.Join(fields, ", ")
}
