// Package config provides configuration types and loading functionality
// for the web-novel scraper.
package config

// Config is the root configuration structure
type Config struct {
	Workdir  string         `yaml:"workdir" json:"workdir"`
	Scraping ScrapingConfig `yaml:"scraping" json:"scraping"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// ScrapingConfig controls how pages are requested
type ScrapingConfig struct {
	UserAgent   string       `yaml:"userAgent,omitempty" json:"userAgent,omitempty"`
	Timeout     int          `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Polite      PoliteConfig `yaml:"polite" json:"polite"`
	Proxy       ProxyConfig  `yaml:"proxy,omitempty" json:"proxy,omitempty"`
	StopOnError bool         `yaml:"stopOnError" json:"stopOnError"`
}

// PoliteConfig controls rate limiting and ethical scraping
type PoliteConfig struct {
	DelayMS          int  `yaml:"delayMs" json:"delayMs"`
	RespectRobotsTxt bool `yaml:"respectRobotsTxt" json:"respectRobotsTxt"`
}

// ProxyConfig holds per-scheme proxy addresses. Empty means direct.
type ProxyConfig struct {
	HTTP  string `yaml:"http,omitempty" json:"http,omitempty"`
	HTTPS string `yaml:"https,omitempty" json:"https,omitempty"`
}

// Enabled reports whether any proxy is configured.
func (p ProxyConfig) Enabled() bool {
	return p.HTTP != "" || p.HTTPS != ""
}

// OutputConfig controls book export
type OutputConfig struct {
	Format       string             `yaml:"format" json:"format"`
	Author       string             `yaml:"author,omitempty" json:"author,omitempty"`
	EPUBMetadata EPUBMetadataConfig `yaml:"epubMetadata,omitempty" json:"epubMetadata,omitempty"`
}

// EPUBMetadataConfig contains EPUB-specific metadata
type EPUBMetadataConfig struct {
	Lang      string `yaml:"lang" json:"lang"`
	Rights    string `yaml:"rights" json:"rights"`
	Publisher string `yaml:"publisher,omitempty" json:"publisher,omitempty"`
}

// LoggingConfig sets the diagnostic log level
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultUserAgent mimics a desktop browser; several supported sites reject
// obvious bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0 Safari/537.36"

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Workdir: "./novels",
		Scraping: ScrapingConfig{
			UserAgent: DefaultUserAgent,
			Timeout:   30,
			Polite: PoliteConfig{
				DelayMS:          1000,
				RespectRobotsTxt: false,
			},
		},
		Output: OutputConfig{
			Format: "epub",
			Author: "Unknown",
			EPUBMetadata: EPUBMetadataConfig{
				Lang:   "en",
				Rights: "Personal use only",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
