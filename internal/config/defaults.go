package config

const (
	defaultWorkDir               = "~/.local/share/librarian"
	defaultRulesFile             = "~/.config/librarian/rules.toml"
	defaultInbox                 = "/0_inbox"
	defaultUploadPrefix          = "/"
	defaultDropboxTimeoutSeconds = 3
	defaultLLMBaseURL            = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel              = "mistralai/mistral-small"
	defaultLLMReferer            = "https://github.com/librarian"
	defaultLLMTitle              = "Librarian Classifier"
	defaultLLMTimeoutSeconds     = 60
	defaultWorkers               = 4
	defaultBatchSize             = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			RulesFile: defaultRulesFile,
		},
		Dropbox: Dropbox{
			Inbox:          defaultInbox,
			UploadPrefix:   defaultUploadPrefix,
			TimeoutSeconds: defaultDropboxTimeoutSeconds,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Processing: Processing{
			Workers:   defaultWorkers,
			BatchSize: defaultBatchSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
