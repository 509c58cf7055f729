package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/ev-charging/api/internal/api/middleware"
	"github.com/ev-charging/api/internal/api/types"
	"github.com/ev-charging/api/internal/validators"
	appErr "github.com/ev-charging/api/pkg/errors"
	"github.com/ev-charging/api/pkg/logger"
)

const maxBodyBytes = 10 << 20

// responder turns service results into HTTP replies.
type responder struct {
	hideErrors bool
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	types.WriteJSON(w, status, v)
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := types.FromError(err, rs.hideErrors)
	if status >= http.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, status, body)
}

type normalizer interface{ Normalize() }

// decode reads a JSON body into dst, trims it and validates it. Wrongly
// typed fields and rule violations are reported together in one error.
func decode(r *http.Request, dst any) error {
	var raw any
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return appErr.New(appErr.CodeInvalid, "Request body is required")
		}
		return appErr.Wrap(err, appErr.CodeInvalid, "Invalid JSON payload")
	}
	body, ok := raw.(map[string]any)
	if !ok {
		return appErr.New(appErr.CodeInvalid, "Request body must be a JSON object")
	}

	typeErrs := checkTypes(body, reflect.TypeOf(dst), "")

	// body now holds only well-typed values, so this cannot fail on types.
	clean, err := json.Marshal(body)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "Invalid JSON payload")
	}
	if err := json.Unmarshal(clean, dst); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "Invalid JSON payload")
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}

	var fields []appErr.FieldError
	if err := validators.Struct(dst); err != nil {
		e, ok := appErr.As(err)
		if !ok || e.Code != appErr.CodeInvalid {
			return err
		}
		fields = e.Fields
	}
	if len(typeErrs) == 0 {
		if len(fields) == 0 {
			return nil
		}
		return appErr.Invalid(fields...)
	}

	for _, fe := range fields {
		if !coveredBy(typeErrs, fe.Field) {
			typeErrs = append(typeErrs, fe)
		}
	}
	return appErr.Invalid(typeErrs...)
}

// coveredBy reports whether field, or an object containing it, already has
// a type error.
func coveredBy(typeErrs []appErr.FieldError, field string) bool {
	for _, te := range typeErrs {
		if field == te.Field || strings.HasPrefix(field, te.Field+".") {
			return true
		}
	}
	return false
}

func article(kind string) string {
	if kind == "object" {
		return "must be an"
	}
	return "must be a"
}

// checkTypes compares the JSON values in obj with the fields of struct type
// t. Mismatched keys are removed from obj and reported; null is left for the
// decoder.
func checkTypes(obj map[string]any, t reflect.Type, prefix string) []appErr.FieldError {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var out []appErr.FieldError
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		v, present := obj[name]
		if !present || v == nil {
			continue
		}
		path := prefix + name

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		want := ""
		switch ft.Kind() {
		case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
			if _, ok := v.(float64); !ok {
				want = "number"
			}
		case reflect.String:
			if _, ok := v.(string); !ok {
				want = "string"
			}
		case reflect.Bool:
			if _, ok := v.(bool); !ok {
				want = "boolean"
			}
		case reflect.Struct:
			nested, ok := v.(map[string]any)
			if !ok {
				want = "object"
				break
			}
			out = append(out, checkTypes(nested, ft, path+".")...)
		}
		if want != "" {
			delete(obj, name)
			fe := appErr.FieldError{Field: path, Message: article(want) + " " + want}
			if !strings.Contains(strings.ToLower(name), "password") {
				fe.Value = v
			}
			out = append(out, fe)
		}
	}
	return out
}
