package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration invariants that do not depend on secrets
// being present. Token and API key presence is enforced by the commands
// that actually open live connections.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		return errors.New("config: paths.work_dir is required")
	}
	if strings.TrimSpace(c.Paths.RulesFile) == "" {
		return errors.New("config: paths.rules_file is required")
	}
	if c.Dropbox.Inbox == "" || !strings.HasPrefix(c.Dropbox.Inbox, "/") {
		return fmt.Errorf("config: dropbox.inbox must be an absolute remote path, got %q", c.Dropbox.Inbox)
	}
	if c.Dropbox.UploadPrefix == "" || !strings.HasPrefix(c.Dropbox.UploadPrefix, "/") {
		return fmt.Errorf("config: dropbox.upload_prefix must be an absolute remote path, got %q", c.Dropbox.UploadPrefix)
	}
	if c.Dropbox.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: dropbox.timeout_seconds must be positive, got %d", c.Dropbox.TimeoutSeconds)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: llm.timeout_seconds must be positive, got %d", c.LLM.TimeoutSeconds)
	}
	if c.Processing.Workers <= 0 {
		return fmt.Errorf("config: processing.workers must be positive, got %d", c.Processing.Workers)
	}
	if c.Processing.BatchSize <= 0 {
		return fmt.Errorf("config: processing.batch_size must be positive, got %d", c.Processing.BatchSize)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
