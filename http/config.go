package http

type ConfigOption func(cfg *config)

type config struct {
	redirectAfterDelete string
	flashCategory       string
}

func defaultConfig() config {
	return config{
		redirectAfterDelete: "/pages",
		flashCategory:       "error",
	}
}

func configFromOptions(configOpts []ConfigOption) config {
	cfg := defaultConfig()
	for _, c := range configOpts {
		c(&cfg)
	}
	return cfg
}

// RedirectAfterDelete sets the target of the redirect after a successful
// delete.
func RedirectAfterDelete(path string) func(cfg *config) {
	return func(cfg *config) {
		cfg.redirectAfterDelete = path
	}
}

// FlashCategory sets the category of the notice written when a delete fails.
func FlashCategory(category string) func(cfg *config) {
	return func(cfg *config) {
		cfg.flashCategory = category
	}
}
