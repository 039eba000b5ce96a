package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvURL              = "GOSCRAPE_URL"
	EnvInput            = "GOSCRAPE_INPUT"
	EnvSelector         = "GOSCRAPE_SELECTOR"
	EnvMode             = "GOSCRAPE_MODE"
	EnvAttr             = "GOSCRAPE_ATTR"
	EnvOutput           = "GOSCRAPE_OUTPUT"
	EnvUserAgent        = "GOSCRAPE_USER_AGENT"
	EnvTimeout          = "GOSCRAPE_TIMEOUT"
	EnvMaxAttempts      = "GOSCRAPE_MAX_ATTEMPTS"
	EnvMaxRedirects     = "GOSCRAPE_MAX_REDIRECTS"
	EnvCacheDir         = "GOSCRAPE_CACHE_DIR"
	EnvCacheMaxAge      = "GOSCRAPE_CACHE_MAX_AGE"
	EnvCacheClear       = "GOSCRAPE_CACHE_CLEAR"
	EnvCacheStrictPerms = "GOSCRAPE_CACHE_STRICT_PERMS"
	EnvBypassCache      = "GOSCRAPE_BYPASS_CACHE"
	EnvVerbose          = "GOSCRAPE_VERBOSE"
)

// ApplyEnvOverrides overwrites cfg fields whose environment variable is set.
// It runs after the config file and before flags, so env beats the file and
// flags beat env. Unparseable numbers and durations are ignored.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString(&cfg.URL, EnvURL)
	setString(&cfg.InputPath, EnvInput)
	setString(&cfg.Mode, EnvMode)
	setString(&cfg.AttrName, EnvAttr)
	setString(&cfg.OutputPath, EnvOutput)
	setString(&cfg.UserAgent, EnvUserAgent)
	setString(&cfg.CacheDir, EnvCacheDir)

	if v := os.Getenv(EnvSelector); strings.TrimSpace(v) != "" {
		cfg.Selector = SplitList(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxAttempts)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxAttempts = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxRedirects)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxRedirects = n
		}
	}

	setDuration := func(dst *time.Duration, key string) {
		if s := strings.TrimSpace(os.Getenv(key)); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				*dst = d
			}
		}
	}
	setDuration(&cfg.Timeout, EnvTimeout)
	setDuration(&cfg.CacheMaxAge, EnvCacheMaxAge)

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, key string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(key))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.CacheClear, EnvCacheClear)
	setBool(&cfg.CacheStrictPerms, EnvCacheStrictPerms)
	setBool(&cfg.BypassCache, EnvBypassCache)
	setBool(&cfg.Verbose, EnvVerbose)
}
