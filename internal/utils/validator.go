package utils

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/dope-playground/brandscout/internal/models"
)

// MaxHeaderValueLength HTTP头部值最大长度 (8KB)
const MaxHeaderValueLength = 8192

// ForbiddenHeaders 禁止用户配置的头部 (由HTTP客户端管理)
var ForbiddenHeaders = []string{
	"Host",
	"Content-Length",
	"Transfer-Encoding",
	"Connection",
}

// HeaderValidator 验证HTTP头部是否符合RFC 7230规范
type HeaderValidator struct {
	nameRegex        *regexp.Regexp
	valueRegex       *regexp.Regexp
	maxValueLength   int
	forbiddenHeaders map[string]bool
}

func NewHeaderValidator() *HeaderValidator {
	forbidden := make(map[string]bool, len(ForbiddenHeaders))
	for _, h := range ForbiddenHeaders {
		forbidden[strings.ToLower(h)] = true
	}

	return &HeaderValidator{
		nameRegex:        regexp.MustCompile(`^[A-Za-z0-9-]+$`),
		valueRegex:       regexp.MustCompile(`^[\x20-\x7E\t]*$`), // 可打印ASCII + 制表符
		maxValueLength:   MaxHeaderValueLength,
		forbiddenHeaders: forbidden,
	}
}

func (hv *HeaderValidator) ValidateName(name string) error {
	if name == "" {
		return &models.ValidationError{
			Field:      "name",
			HeaderName: name,
			Reason:     "header name is empty",
		}
	}
	if !hv.nameRegex.MatchString(name) {
		return &models.ValidationError{
			Field:      "name",
			HeaderName: name,
			Reason:     "header name may only contain letters, digits and hyphens",
			Suggestion: "use names like 'User-Agent' or 'X-Custom-Header'",
		}
	}
	return nil
}

func (hv *HeaderValidator) ValidateValue(name, value string) error {
	if len(value) > hv.maxValueLength {
		return &models.ValidationError{
			Field:      "value",
			HeaderName: name,
			Reason:     fmt.Sprintf("value is %d bytes (max %d)", len(value), hv.maxValueLength),
			Suggestion: fmt.Sprintf("shorten the value to %d bytes", hv.maxValueLength),
		}
	}
	if !hv.valueRegex.MatchString(value) {
		return &models.ValidationError{
			Field:      "value",
			HeaderName: name,
			Reason:     "value contains non-printable or non-ASCII characters",
			Suggestion: "remove control and non-ASCII characters",
		}
	}
	return nil
}

// ValidateHeader 验证头部名称+值
// 顺序: 禁止头部 -> 名称 -> 值
func (hv *HeaderValidator) ValidateHeader(name, value string) error {
	if hv.IsForbidden(name) {
		return &models.ValidationError{
			Field:      "name",
			HeaderName: name,
			Reason:     "header is managed by the HTTP client",
			Suggestion: fmt.Sprintf("remove the '%s' header", name),
		}
	}
	if err := hv.ValidateName(name); err != nil {
		return err
	}
	return hv.ValidateValue(name, value)
}

func (hv *HeaderValidator) IsForbidden(name string) bool {
	return hv.forbiddenHeaders[strings.ToLower(name)]
}

// Validate 验证http.Header中的所有头部
// 返回: 如果有任何头部非法,返回第一个ValidationError
func (hv *HeaderValidator) Validate(headers http.Header) error {
	for name, values := range headers {
		for _, value := range values {
			if err := hv.ValidateHeader(name, value); err != nil {
				return err
			}
		}
	}
	return nil
}
