package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationDetail describes one reason a request was rejected with 422
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is the 422 response body
type ValidationErrorResponse struct {
	Detail []ValidationDetail `json:"detail"`
}

var registerOnce sync.Once

// RegisterJSONFieldNames makes the gin validator report fields by their json
// name so error locations match the wire format.
func RegisterJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// BodyValidationErrors translates an error returned by gin's JSON binding
// into validation details located in the request body.
func BodyValidationErrors(err error) []ValidationDetail {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.As(err, &verrs):
		details := make([]ValidationDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldDetail(fe))
		}
		return details
	case errors.As(err, &typeErr):
		return []ValidationDetail{{
			Loc:  bodyLoc(typeErr.Field),
			Msg:  typeMessage(typeErr.Type.Kind()),
			Type: "type_error." + typeName(typeErr.Type.Kind()),
		}}
	case errors.As(err, &syntaxErr):
		return []ValidationDetail{{
			Loc:  []string{"body"},
			Msg:  fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset),
			Type: "value_error.jsondecode",
		}}
	case errors.Is(err, io.EOF):
		return []ValidationDetail{{
			Loc:  []string{"body"},
			Msg:  "field required",
			Type: "value_error.missing",
		}}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return []ValidationDetail{{
			Loc:  []string{"body"},
			Msg:  "unexpected end of JSON input",
			Type: "value_error.jsondecode",
		}}
	default:
		return []ValidationDetail{{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: "value_error",
		}}
	}
}

// PathIntegerError is the detail for a path parameter that is not an integer
func PathIntegerError(param string) []ValidationDetail {
	return []ValidationDetail{{
		Loc:  []string{"path", param},
		Msg:  "value is not a valid integer",
		Type: "type_error.integer",
	}}
}

func fieldDetail(fe validator.FieldError) ValidationDetail {
	loc := bodyLoc(fe.Field())
	switch fe.Tag() {
	case "required":
		return ValidationDetail{Loc: loc, Msg: "field required", Type: "value_error.missing"}
	default:
		return ValidationDetail{
			Loc:  loc,
			Msg:  fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			Type: "value_error." + fe.Tag(),
		}
	}
}

func bodyLoc(field string) []string {
	loc := []string{"body"}
	if field != "" {
		loc = append(loc, strings.Split(field, ".")...)
	}
	return loc
}

func typeName(kind reflect.Kind) string {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.String:
		return "str"
	default:
		return kind.String()
	}
}

func typeMessage(kind reflect.Kind) string {
	switch typeName(kind) {
	case "integer":
		return "value is not a valid integer"
	case "str":
		return "str type expected"
	default:
		return "value is not a valid " + kind.String()
	}
}
