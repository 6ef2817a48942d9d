package mistral

// Config contains Mistral provider configuration.
type Config struct {
	APIKey  string `env:"MISTRAL_API_KEY"`
	BaseURL string `env:"MISTRAL_BASE_URL" envDefault:"https://api.mistral.ai/v1"`
	Timeout int    `env:"MISTRAL_TIMEOUT"  envDefault:"60"`
}
