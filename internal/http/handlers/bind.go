package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds the request body into out and, on failure, responds 400 with
// a message naming the first offending field and the rule it broke.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondBadRequest(ctx, bindErrorMessage(err, out))

		return false
	}

	return true
}

func bindErrorMessage(err error, out interface{}) string {
	var validatorErrors validator.ValidationErrors

	if errors.As(err, &validatorErrors) && len(validatorErrors) > 0 {
		// first offending field only, matching the one-message error contract
		fe := validatorErrors[0]
		field := jsonFieldName(out, fe.StructField())

		return field + " " + validationMessage(fe.Tag(), fe.Param())
	}

	// malformed JSON, type mismatches, empty body
	return "Invalid request body"
}

func jsonFieldName(out interface{}, structField string) string {
	t := reflect.TypeOf(out)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	sf, ok := t.FieldByName(structField)

	if !ok {
		return strings.ToLower(structField)
	}

	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")

	if name == "" || name == "-" {
		return strings.ToLower(structField)
	}

	return name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	default:
		return "failed " + rule + " validation"
	}
}
