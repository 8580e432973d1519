package config

import (
	"os"
	"strings"
)

// normalize expands paths, fills secrets from the environment, and trims
// string fields so validation sees canonical values.
func (c *Config) normalize() error {
	var err error
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return err
	}
	if c.Paths.RulesFile, err = expandPath(strings.TrimSpace(c.Paths.RulesFile)); err != nil {
		return err
	}

	c.Dropbox.AccessToken = strings.TrimSpace(c.Dropbox.AccessToken)
	if c.Dropbox.AccessToken == "" {
		c.Dropbox.AccessToken = strings.TrimSpace(os.Getenv("DROPBOX_TOKEN"))
	}
	c.Dropbox.Inbox = normalizeRemoteFolder(c.Dropbox.Inbox)
	c.Dropbox.UploadPrefix = normalizeRemoteFolder(c.Dropbox.UploadPrefix)

	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	return nil
}

// normalizeRemoteFolder canonicalizes a Dropbox folder path: leading slash,
// no trailing slash (except for the root, which stays "/").
func normalizeRemoteFolder(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}
	if value != "/" {
		value = strings.TrimRight(value, "/")
	}
	return value
}
