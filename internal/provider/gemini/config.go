package gemini

// Config contains Gemini provider configuration. The adapter speaks to
// Google's OpenAI-compatible endpoint, so the fields mirror the OpenAI SDK
// options.
type Config struct {
	APIKey     string `env:"GEMINI_API_KEY"`
	BaseURL    string `env:"GEMINI_BASE_URL"    envDefault:"https://generativelanguage.googleapis.com/v1beta/openai"`
	Timeout    int    `env:"GEMINI_TIMEOUT"     envDefault:"60"`
	MaxRetries int    `env:"GEMINI_MAX_RETRIES" envDefault:"3"`
}
