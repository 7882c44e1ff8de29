package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr     string   `yaml:"listen_addr" json:"listen_addr"`
	FilesRoot      string   `yaml:"files_root" json:"files_root"`
	TmpURL         string   `yaml:"tmp_url" json:"tmp_url"`
	DownloadInline []string `yaml:"download_inline" json:"download_inline"`
	ArchiveName    string   `yaml:"archive_name" json:"archive_name"`
	GCTTLHours     int      `yaml:"gc_ttl_hours" json:"gc_ttl_hours"`
	GCIntervalMin  int      `yaml:"gc_interval_min" json:"gc_interval_min"`
}

const (
	defaultArchiveName   = "archive.zip"
	defaultTmpURL        = "file:///tmp/filegate?create_dir=true"
	defaultGCTTLHours    = 24
	defaultGCIntervalMin = 30
)

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
func Load() (*Config, error) {
	path := getenv("CONFIG_PATH", "./config.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("FILES_ROOT"); v != "" {
		c.FilesRoot = v
	}
	if v := os.Getenv("TMP_URL"); v != "" {
		c.TmpURL = v
	}
	if v := os.Getenv("DOWNLOAD_INLINE"); v != "" {
		c.DownloadInline = splitComma(v)
	}
	if v := os.Getenv("ARCHIVE_NAME"); v != "" {
		c.ArchiveName = v
	}
	if v := os.Getenv("GC_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.GCTTLHours = n
		}
	}
	if v := os.Getenv("GC_INTERVAL_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.GCIntervalMin = n
		}
	}

	c.applyDefaults()

	return &c, nil
}

// applyDefaults заполняет незаданные поля значениями по умолчанию.
func (c *Config) applyDefaults() {
	if c.ArchiveName == "" {
		c.ArchiveName = defaultArchiveName
	}
	if c.TmpURL == "" {
		c.TmpURL = defaultTmpURL
	}
	if c.GCTTLHours == 0 {
		c.GCTTLHours = defaultGCTTLHours
	}
	if c.GCIntervalMin == 0 {
		c.GCIntervalMin = defaultGCIntervalMin
	}
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
