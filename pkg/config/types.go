package config

// Config holds optional defaults for the cleaner, loaded from the
// config file. Flags still win over anything set here.
type Config struct {
	Filename string `json:"-"` // Note: for internal use only

	// DataDir is the default registry v2 storage directory.
	DataDir string `json:"dataDir,omitempty"`

	// Keep is the default number of most recently tagged images to keep.
	Keep int `json:"keep,omitempty"`

	// Exclude are default glob patterns of tags that are never deleted.
	Exclude []string `json:"exclude,omitempty"`
}

func (c *Config) GetExclude() string {
	out := ""
	for i, p := range c.Exclude {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}
