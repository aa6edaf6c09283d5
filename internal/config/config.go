// Package config reads server settings from the environment. The entrypoint
// loads a .env file first, so local overrides live next to the binary.
package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultTargetURL is the GTO Wizard range-builder spot every new session
// opens. Overridable with TARGET_URL for other spots or a staging site.
const DefaultTargetURL = "https://app.gtowizard.com/practice/range-builder?custree_id=929b2d3e-9830-448c-a6a4-e9218cba6504&cussol_id=cf42a022-e53a-438f-9997-02e36495104d&solution_type=gwiz&gmfs_solution_tab=ai_sols&gametype=MTTGeneral&depth=12.125&gmff_depth=100&gmfft_sort_key=0&gmfft_sort_order=desc&board=Js8d2d&history_spot=0"

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds every runtime knob for the server.
type Config struct {
	Addr string

	TargetURL      string
	Browser        string
	Headless       bool
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string

	LaunchTimeout time.Duration
	StepTimeout   time.Duration

	MaxSessions      int64
	RateLimitPerHour int
	RateLimitBurst   int
}

// FromEnv builds a Config from environment variables, falling back to
// defaults that match a local headed deployment.
func FromEnv() Config {
	return Config{
		Addr:             getEnv("ADDR", ":8080"),
		TargetURL:        getEnv("TARGET_URL", DefaultTargetURL),
		Browser:          getEnv("BROWSER", "firefox"),
		Headless:         getBool("HEADLESS", false),
		ViewportWidth:    getInt("VIEWPORT_WIDTH", 1920),
		ViewportHeight:   getInt("VIEWPORT_HEIGHT", 1080),
		UserAgent:        getEnv("USER_AGENT", defaultUserAgent),
		LaunchTimeout:    getDuration("LAUNCH_TIMEOUT_SECONDS", 60*time.Second),
		StepTimeout:      getDuration("STEP_TIMEOUT_SECONDS", 5*time.Second),
		MaxSessions:      int64(getInt("MAX_SESSIONS", 10)),
		RateLimitPerHour: getInt("RATE_LIMIT_PER_HOUR", 100),
		RateLimitBurst:   getInt("RATE_LIMIT_BURST", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
