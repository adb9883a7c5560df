package main

import (
	"fmt"

	"github.com/dope-playground/brandscout/internal/core"
	"github.com/dope-playground/brandscout/internal/models"
)

// ValidateFlags checks the target and the merged configuration.
func ValidateFlags(targetURL, urlFile string, cfg *core.Config) error {
	if targetURL != "" && urlFile != "" {
		return fmt.Errorf("use either --url or --url-file, not both")
	}
	if targetURL != "" {
		if err := models.ValidateURL(targetURL); err != nil {
			return fmt.Errorf("invalid target URL: %w", err)
		}
	}
	if batchDelay < 0 {
		return fmt.Errorf("batch delay must not be negative, got %d", batchDelay)
	}
	return cfg.Validate()
}
