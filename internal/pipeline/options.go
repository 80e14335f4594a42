package pipeline

import (
	"picdesc/internal/config"
	"picdesc/internal/port"
)

// Options is the immutable picture description configuration bound to a Converter.
type Options struct {
	RepoID                string
	Prompt                string
	MaxNewTokens          int
	DoSample              bool
	SpecialTokenIDs       bool
	ImagesScale           float64
	GeneratePictureImages bool
	MaxPages              int
	MaxFileSizeBytes      int64
	MaxConcurrent         int64
}

// DefaultOptions returns the settings the service ships with.
func DefaultOptions() Options {
	return Options{
		RepoID:                config.DefaultRepoID,
		Prompt:                config.DefaultPrompt,
		MaxNewTokens:          200,
		DoSample:              false,
		SpecialTokenIDs:       true,
		ImagesScale:           2.0,
		GeneratePictureImages: true,
		MaxPages:              config.DefaultMaxPages,
		MaxFileSizeBytes:      config.DefaultMaxFileSizeBytes,
		MaxConcurrent:         1,
	}
}

// OptionsFromConfig maps the pipeline section of the configuration onto Options.
func OptionsFromConfig(cfg *config.PipelineConfig) Options {
	return Options{
		RepoID:                cfg.RepoID,
		Prompt:                cfg.Prompt,
		MaxNewTokens:          cfg.MaxNewTokens,
		DoSample:              cfg.DoSample,
		SpecialTokenIDs:       cfg.SpecialTokenIDs,
		ImagesScale:           cfg.ImagesScale,
		GeneratePictureImages: cfg.GeneratePictureImages,
		MaxPages:              cfg.MaxPages,
		MaxFileSizeBytes:      cfg.MaxFileSizeBytes,
		MaxConcurrent:         cfg.MaxConcurrent,
	}
}

// GenerationConfig returns the generation parameters handed to the model.
// A fresh map is built on every call so callers cannot mutate shared state.
func (o Options) GenerationConfig() map[string]interface{} {
	gen := map[string]interface{}{
		"max_new_tokens": o.MaxNewTokens,
		"do_sample":      o.DoSample,
	}
	if o.SpecialTokenIDs {
		gen["pad_token_id"] = 0
		gen["bos_token_id"] = 0
		gen["eos_token_id"] = 0
	}
	return gen
}

func (o Options) request(source string) port.ConvertRequest {
	return port.ConvertRequest{
		Source: source,
		PictureDescription: port.PictureDescriptionOptions{
			RepoID:           o.RepoID,
			Prompt:           o.Prompt,
			GenerationConfig: o.GenerationConfig(),
		},
		ImagesScale:           o.ImagesScale,
		GeneratePictureImages: o.GeneratePictureImages,
	}
}

// Option overrides a single setting in CreateConverter.
type Option func(*Options)

// WithOptions replaces all settings.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

// WithLimits overrides the page and byte ceilings.
func WithLimits(maxPages int, maxFileSizeBytes int64) Option {
	return func(o *Options) {
		o.MaxPages = maxPages
		o.MaxFileSizeBytes = maxFileSizeBytes
	}
}

// WithPrompt overrides the description prompt.
func WithPrompt(prompt string) Option {
	return func(o *Options) { o.Prompt = prompt }
}

// WithModel overrides the vision-language model repo id.
func WithModel(repoID string) Option {
	return func(o *Options) { o.RepoID = repoID }
}
