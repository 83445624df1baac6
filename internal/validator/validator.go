package validator

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// IsImageURL 是一个自定义的校验函数，用于验证图片地址格式。
// 地址形如 https://<bucket>.<host>/<key>，bucket 与 key 会在删除旧图时被解析出来。
func IsImageURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if !strings.Contains(u.Host, ".") {
		return false
	}
	return strings.TrimPrefix(u.Path, "/") != ""
}

// RegisterTagName makes validation errors report the json field name instead of
// the Go struct field, so binding failures surface as {field: message}.
func RegisterTagName(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldErrors 把 binding 校验错误转换成 {field: message} 形式
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["error"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = fmt.Sprintf("%s is required", fe.Field())
		case "email":
			out[fe.Field()] = "Email is invalid"
		case "min":
			out[fe.Field()] = fmt.Sprintf("Must be at least %s characters", fe.Param())
		case "max":
			out[fe.Field()] = fmt.Sprintf("Must be at most %s characters", fe.Param())
		case "imageurl":
			out[fe.Field()] = "Invalid image URL"
		default:
			out[fe.Field()] = fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return out
}
