package sim

// Config contains simulated provider configuration. The seed fixes the
// output-token draw sequence so offline runs are reproducible.
type Config struct {
	Seed int64 `env:"SIM_SEED" envDefault:"1"`
}
