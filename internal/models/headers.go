package models

import (
	"fmt"
	"net/http"
	"strings"
)

// CliHeaders 命令行--header参数 (格式 "Name: Value")
type CliHeaders []string

// Parse 解析为http.Header
func (ch CliHeaders) Parse() (http.Header, error) {
	result := make(http.Header)
	for i, s := range ch {
		name, value, err := parseHeaderString(s)
		if err != nil {
			return nil, fmt.Errorf("--header item %d: %w", i+1, err)
		}
		result.Set(name, value)
	}
	return result, nil
}

func parseHeaderString(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, ":")
	if !ok {
		return "", "", fmt.Errorf("missing colon, expected 'Name: Value'")
	}

	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" {
		return "", "", fmt.Errorf("header name is empty")
	}
	return name, value, nil
}

// HeaderProvider 提供页面加载和图片下载使用的HTTP头部
type HeaderProvider interface {
	// GetHeaders 返回按优先级合并的头部 (默认 < 配置文件 < 命令行)
	GetHeaders() (http.Header, error)
}

// StaticHeaders 固定头部的HeaderProvider
type StaticHeaders http.Header

// GetHeaders 实现HeaderProvider接口
func (h StaticHeaders) GetHeaders() (http.Header, error) {
	return http.Header(h).Clone(), nil
}

// ValidationError 头部验证错误
type ValidationError struct {
	Field      string // "name" 或 "value"
	HeaderName string
	Reason     string
	Suggestion string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid header [%s]: %s", e.HeaderName, e.Reason)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (suggestion: %s)", e.Suggestion)
	}
	return msg
}

// ConfigError 配置文件读取或解析错误
type ConfigError struct {
	FilePath string
	Cause    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config file error [%s]: %v", e.FilePath, e.Cause)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
