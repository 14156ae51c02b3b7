// Package bind decodes and validates JSON request bodies.
package bind

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"nurture-backend/internal/shared/server/respond"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Struct validates dst against its `validate` tags and returns field issues.
func Struct(dst any) []respond.FieldIssue {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []respond.FieldIssue{{Field: "body", Issue: "invalid"}}
	}
	issues := make([]respond.FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, respond.FieldIssue{Field: fe.Field(), Issue: fe.Tag()})
	}
	return issues
}

// JSON decodes the request body into dst and validates it. On failure it
// writes a validation_error response and returns false.
func JSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respond.Validation(c, "invalid request body", []respond.FieldIssue{{Field: "body", Issue: "malformed"}})
		return false
	}
	if issues := Struct(dst); len(issues) > 0 {
		respond.Validation(c, "invalid request", issues)
		return false
	}
	return true
}

// Limit reads the "limit" query parameter, falling back to def and clamping
// to 1..max.
func Limit(c *gin.Context, def, max int) int {
	limit := def
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > max {
		limit = max
	}
	return limit
}
