package config

// Picture description defaults used when the environment does not override them.
const (
	DefaultRepoID           = "ibm-granite/granite-vision-3.1-2b-preview"
	DefaultPrompt           = "Describe the image in three sentences. Be concise and accurate."
	DefaultMaxPages         = 100
	DefaultMaxFileSizeBytes = 20 * 1024 * 1024
)
