package config

import "time"

// IntegrationsConfig groups settings for the outbound collaborators:
// LLM summarizer, Stripe billing, Expo push, subscriber webhooks.
type IntegrationsConfig struct {
	AI       AIConfig       `yaml:"ai"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Push     PushConfig     `yaml:"push"`
	Webhooks WebhooksConfig `yaml:"webhooks"`
}

// AIConfig holds LLM summarization settings. An empty key disables
// summarization and the endpoints answer with a service error.
type AIConfig struct {
	APIKey  string        `yaml:"api_key" env:"PASTEBRIDGE_AI_API_KEY" env-default:""`
	BaseURL string        `yaml:"base_url" env:"PASTEBRIDGE_AI_BASE_URL" env-default:"https://api.openai.com/v1/chat/completions"`
	Model   string        `yaml:"model" env:"PASTEBRIDGE_AI_MODEL" env-default:"gpt-5.2"`
	Timeout time.Duration `yaml:"timeout" env:"PASTEBRIDGE_AI_TIMEOUT" env-default:"30s"`
}

// StripeConfig holds payment provider settings.
type StripeConfig struct {
	APIKey        string `yaml:"api_key" env:"PASTEBRIDGE_STRIPE_API_KEY" env-default:""`
	WebhookSecret string `yaml:"webhook_secret" env:"PASTEBRIDGE_STRIPE_WEBHOOK_SECRET" env-default:""`
}

// PushConfig holds Expo push notification settings.
type PushConfig struct {
	Endpoint string        `yaml:"endpoint" env:"PASTEBRIDGE_PUSH_ENDPOINT" env-default:"https://exp.host/--/api/v2/push/send"`
	Timeout  time.Duration `yaml:"timeout" env:"PASTEBRIDGE_PUSH_TIMEOUT" env-default:"10s"`
}

// WebhooksConfig holds subscriber webhook delivery settings.
type WebhooksConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"PASTEBRIDGE_WEBHOOK_TIMEOUT" env-default:"10s"`
}
