package models

import (
	"fmt"
	"net/url"
	"time"
)

// TaskStatus is the lifecycle state of one crawl.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// CrawlMode selects the page driver.
type CrawlMode string

const (
	ModeDynamic CrawlMode = "dynamic" // headless Chrome via rod
	ModeStatic  CrawlMode = "static"  // plain HTTP via colly
)

// Default fetch caps per crawl.
const (
	DefaultHighPriorityLimit   = 8
	DefaultMediumPriorityLimit = 5
)

// CrawlConfig controls one crawl.
type CrawlConfig struct {
	Mode                CrawlMode `json:"mode" mapstructure:"mode"`
	Headless            bool      `json:"headless" mapstructure:"headless"`
	WaitTime            int       `json:"wait_time" mapstructure:"wait_time"`       // seconds to settle after load
	PageTimeout         int       `json:"page_timeout" mapstructure:"page_timeout"` // seconds per navigation
	HighPriorityLimit   int       `json:"high_priority_limit" mapstructure:"high_priority_limit"`
	MediumPriorityLimit int       `json:"medium_priority_limit" mapstructure:"medium_priority_limit"`
	SeparateImagePass   bool      `json:"separate_image_pass" mapstructure:"separate_image_pass"`
	MaxPageText         int       `json:"max_page_text" mapstructure:"max_page_text"` // characters sent to the model per page
	ImageWorkers        int       `json:"image_workers" mapstructure:"image_workers"` // 0 sizes from system resources
}

// DefaultCrawlConfig returns the configuration used when nothing overrides it.
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		Mode:                ModeDynamic,
		Headless:            true,
		WaitTime:            2,
		PageTimeout:         30,
		HighPriorityLimit:   DefaultHighPriorityLimit,
		MediumPriorityLimit: DefaultMediumPriorityLimit,
		MaxPageText:         30000,
	}
}

// Validate checks ranges and the mode.
func (c *CrawlConfig) Validate() error {
	if c.Mode != ModeDynamic && c.Mode != ModeStatic {
		return fmt.Errorf("invalid crawl mode %q (valid: dynamic, static)", c.Mode)
	}
	if c.WaitTime < 0 || c.WaitTime > 60 {
		return fmt.Errorf("wait time must be between 0 and 60 seconds, got %d", c.WaitTime)
	}
	if c.PageTimeout < 1 || c.PageTimeout > 300 {
		return fmt.Errorf("page timeout must be between 1 and 300 seconds, got %d", c.PageTimeout)
	}
	if c.HighPriorityLimit < 0 || c.MediumPriorityLimit < 0 {
		return fmt.Errorf("priority limits must not be negative")
	}
	if c.MaxPageText < 1000 {
		return fmt.Errorf("max page text must be at least 1000 characters, got %d", c.MaxPageText)
	}
	if c.ImageWorkers < 0 || c.ImageWorkers > 64 {
		return fmt.Errorf("image workers must be between 0 and 64, got %d", c.ImageWorkers)
	}
	return nil
}

// CrawlTask tracks one crawl invocation.
type CrawlTask struct {
	ID          string      `json:"id"`
	TargetURL   string      `json:"target_url"`
	Domain      string      `json:"domain"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	Config      CrawlConfig `json:"config"`
	Status      TaskStatus  `json:"status"`
	Error       string      `json:"error,omitempty"`
}

// NewCrawlTask validates the target and config and assigns a task ID.
func NewCrawlTask(targetURL string, config CrawlConfig) (*CrawlTask, error) {
	if err := ValidateURL(targetURL); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	parsed, _ := url.Parse(targetURL)

	return &CrawlTask{
		ID:        generateID(),
		TargetURL: targetURL,
		Domain:    parsed.Host,
		CreatedAt: time.Now(),
		Config:    config,
		Status:    TaskStatusPending,
	}, nil
}

// Finish marks the task completed or failed.
func (t *CrawlTask) Finish(err error) {
	now := time.Now()
	t.CompletedAt = &now
	if err != nil {
		t.Status = TaskStatusFailed
		t.Error = err.Error()
		return
	}
	t.Status = TaskStatusCompleted
}
