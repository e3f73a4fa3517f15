package config

import "github.com/pagemill/chapterscan/internal/preprocess"

// Config holds chapterscan configuration.
// Stored at: {home}/config.yaml
type Config struct {
	// Language is the Tesseract language hint, combined with "+"
	// ("chi_sim+eng").
	Language string `mapstructure:"language" yaml:"language"`

	// Workers bounds concurrent page recognitions.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// TOCWindow is how many opening pages the toc scan inspects.
	TOCWindow int `mapstructure:"toc_window" yaml:"toc_window"`

	// SkipBlank caches empty text for near-blank pages without paying
	// for recognition.
	SkipBlank bool `mapstructure:"skip_blank" yaml:"skip_blank"`

	Enhance EnhanceCfg `mapstructure:"enhance" yaml:"enhance"`
}

// EnhanceCfg configures the image cleanup applied before recognition.
type EnhanceCfg struct {
	Enabled       bool    `mapstructure:"enabled" yaml:"enabled"`
	Scale         int     `mapstructure:"scale" yaml:"scale"`
	DenoiseRadius float64 `mapstructure:"denoise_radius" yaml:"denoise_radius"`
	Contrast      float64 `mapstructure:"contrast" yaml:"contrast"`
	Sharpen       bool    `mapstructure:"sharpen" yaml:"sharpen"`
	Binarize      bool    `mapstructure:"binarize" yaml:"binarize"`
	Trim          bool    `mapstructure:"trim" yaml:"trim"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	opts := preprocess.DefaultOptions()
	return &Config{
		Language:  "chi_sim+eng",
		Workers:   2,
		TOCWindow: 25,
		SkipBlank: true,
		Enhance: EnhanceCfg{
			Enabled:       true,
			Scale:         opts.Scale,
			DenoiseRadius: opts.DenoiseRadius,
			Contrast:      opts.Contrast,
			Binarize:      opts.Binarize,
		},
	}
}

// EnhanceOptions converts the enhancement settings into pipeline
// options.
func (c *Config) EnhanceOptions() preprocess.Options {
	return preprocess.Options{
		Scale:         c.Enhance.Scale,
		DenoiseRadius: c.Enhance.DenoiseRadius,
		Contrast:      c.Enhance.Contrast,
		Sharpen:       c.Enhance.Sharpen,
		Binarize:      c.Enhance.Binarize,
		Trim:          c.Enhance.Trim,
	}
}
