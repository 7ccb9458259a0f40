package config

// SourceConfig holds per-source settings for fetching document previews.
// Preview endpoints are usually behind the application's authentication, so
// a cookie or header set is often required.
type SourceConfig struct {
	// Cookie is an HTTP cookie to send when fetching from this source.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers to include in fetch requests.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// File represents the structure of the .mindfula11y configuration file.
type File struct {
	// Sources maps host names to their fetch settings.
	Sources map[string]SourceConfig `yaml:"sources,omitempty"`

	// Defaults contains settings applied to all sources unless overridden.
	Defaults SourceConfig `yaml:"defaults,omitempty"`
}

// GetSourceConfig returns the settings for a host, merging host-specific
// values over the defaults.
func (cf *File) GetSourceConfig(host string) SourceConfig {
	result := cf.Defaults

	// Copy the header map so merging never mutates the shared defaults.
	if len(result.Headers) > 0 {
		headers := make(map[string]string, len(result.Headers))
		for k, v := range result.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	if sc, ok := cf.Sources[host]; ok {
		if sc.Cookie != "" {
			result.Cookie = sc.Cookie
		}
		if len(sc.Headers) > 0 {
			if result.Headers == nil {
				result.Headers = make(map[string]string)
			}
			for k, v := range sc.Headers {
				result.Headers[k] = v
			}
		}
	}

	return result
}
