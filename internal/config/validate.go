package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535 (got %d)", c.Server.Port)
	}

	u, err := url.Parse(c.Content.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("content.base_url must be an absolute URL (got %q)", c.Content.BaseURL)
	}

	if strings.TrimSpace(c.Content.DefaultLanguage) == "" {
		return fmt.Errorf("content.default_language must not be empty")
	}
	if strings.TrimSpace(c.Content.DefaultOrganization) == "" {
		return fmt.Errorf("content.default_organization must not be empty")
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0 (got %d)", c.LLM.MaxTokens)
	}

	if c.Chat.MaxMessageLength <= 0 {
		return fmt.Errorf("chat.max_message_length must be > 0 (got %d)", c.Chat.MaxMessageLength)
	}
	if c.Chat.MaxHistoryTurns < 0 {
		return fmt.Errorf("chat.max_history_turns must be >= 0 (got %d)", c.Chat.MaxHistoryTurns)
	}
	if c.Chat.MaxNotesPerUser <= 0 {
		return fmt.Errorf("chat.max_notes_per_user must be > 0 (got %d)", c.Chat.MaxNotesPerUser)
	}

	return nil
}
