package validator

import (
	"fmt"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// echoのValidatorとして差し込むリクエストDTO検証。
// 形式チェックだけをタグで行い、業務的な整合性はusecase側で見る。
type RequestValidator struct {
	validate *validatorv10.Validate
}

func New() *RequestValidator {
	v := validatorv10.New(validatorv10.WithRequiredStructEnabled())

	//エラーにはGoのフィールド名ではなくjson名を出す
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

// FormatValidationErrors はフィールド名→メッセージのmapに変換する。
func FormatValidationErrors(err error) map[string]string {
	out := map[string]string{}
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		out["error"] = err.Error()
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = formatFieldError(fe)
	}
	return out
}

func formatFieldError(e validatorv10.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", e.Param())
	case "uuid":
		return "Must be a valid UUID"
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}
