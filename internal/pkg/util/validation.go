package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 错误里的字段名使用请求参数名（json tag）
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldError 第一个未通过校验的字段
type FieldError struct {
	Field string // 带下标的完整路径，如 tagFilters[0].operator
	Tag   string
	Param string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("字段 [%s] 校验失败，规则 [%s]", e.Field, e.Tag)
}

// BaseName 去掉路径与下标后的字段名，如 tagFilters[0].tags[1] 得到 tags
func (e *FieldError) BaseName() string {
	name := e.Field
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name, _, _ = strings.Cut(name, "[")
	return name
}

// ValidateDTO 校验带 validate tag 的结构体，失败时返回 *FieldError
func ValidateDTO(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return err
	}

	first := vErrs[0]
	field := first.Namespace()
	// 去掉根结构体名
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	return &FieldError{Field: field, Tag: first.Tag(), Param: first.Param()}
}

// SplitTags 逗号分隔的标签参数，去空白并丢弃空项
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
