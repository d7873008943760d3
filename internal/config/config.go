package config

import (
	"fmt"
	"time"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

type Config struct {
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Anthropic   AnthropicConfig   `yaml:"anthropic"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Speech      SpeechConfig      `yaml:"speech"`
	Document    DocumentConfig    `yaml:"document"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type SummarizerConfig struct {
	Provider string        `yaml:"provider"`
	Timeout  time.Duration `yaml:"timeout"`
}

type AnthropicConfig struct {
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	Version   string `yaml:"version"`
	MaxTokens int    `yaml:"max_tokens"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type SpeechConfig struct {
	Language       string        `yaml:"language"`
	SessionTimeout time.Duration `yaml:"session_timeout"`
	// Command is run once per recognition attempt; its stdout is the result.
	// Empty means utterances are read line by line from stdin.
	Command []string `yaml:"command"`
	WorkDir string   `yaml:"work_dir"`
}

type DocumentConfig struct {
	OutputDir string `yaml:"output_dir"`
	Format    string `yaml:"format"`
	FontPath  string `yaml:"font_path"`
	BoldPath  string `yaml:"bold_font_path"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Summarizer.Provider == "" {
		c.Summarizer.Provider = ProviderAnthropic
	}
	switch c.Summarizer.Provider {
	case ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("summarizer.provider %q is not supported", c.Summarizer.Provider)
	}

	if c.Document.Format == "" {
		c.Document.Format = FormatPDF
	}
	switch c.Document.Format {
	case FormatPDF, FormatDOCX:
	default:
		return fmt.Errorf("document.format %q is not supported", c.Document.Format)
	}
	if c.Document.BoldPath != "" && c.Document.FontPath == "" {
		return fmt.Errorf("document.font_path is required when bold_font_path is set")
	}

	if c.Speech.SessionTimeout < 0 {
		return fmt.Errorf("speech.session_timeout must not be negative")
	}
	if c.Anthropic.MaxTokens < 0 {
		return fmt.Errorf("anthropic.max_tokens must not be negative")
	}

	if c.Anthropic.BaseURL == "" {
		c.Anthropic.BaseURL = "https://api.anthropic.com"
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = "claude-3-haiku-20240307"
	}
	if c.Anthropic.Version == "" {
		c.Anthropic.Version = "2023-06-01"
	}
	if c.Anthropic.MaxTokens == 0 {
		c.Anthropic.MaxTokens = 1024
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Speech.Language == "" {
		c.Speech.Language = "ja-JP"
	}
	if c.Speech.SessionTimeout == 0 {
		c.Speech.SessionTimeout = 5 * time.Minute
	}
	if c.Document.OutputDir == "" {
		c.Document.OutputDir = defaultOutputDir()
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}

// APIKey returns the credential for the configured summarizer provider.
func (c *Config) APIKey() string {
	if c.Summarizer.Provider == ProviderGemini {
		return c.Gemini.APIKey
	}
	return c.Anthropic.APIKey
}
