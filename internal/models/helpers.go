package models

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// ValidateURL accepts absolute http(s) URLs with a host.
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must include a host")
	}
	return nil
}

// Origin returns scheme://host of an absolute URL.
func Origin(urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("URL is not absolute: %s", urlStr)
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}

func generateID() string {
	return uuid.New().String()
}
