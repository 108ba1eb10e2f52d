package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"SITE_NAME", "SITE_URL", "SITE_DESCRIPTION", "SITE_AUTHOR", "ADDR",
	"CONTENT_DIR", "STATIC_DIR", "SESSION_SECRET", "COOKIE_SECURE",
	"DEFAULT_THEME", "LOG_LEVEL", "PROBE_LIMIT",
}

// clearConfigEnv blanks every variable LoadConfig reads. t.Setenv restores
// the previous values when the test ends.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	want := SiteConfig{
		Name:        "Folio",
		URL:         "http://localhost:3000",
		Addr:        ":3000",
		ContentDir:  "content",
		StaticDir:   "public",
		LogLevel:    "info",
		ProbeLimit:  30,
		ProbeWindow: time.Minute,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFromDotenv(t *testing.T) {
	clearConfigEnv(t)
	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte(
		"SITE_NAME=Notebook\nSITE_URL=https://notes.example\nCOOKIE_SECURE=true\nPROBE_LIMIT=5\n"), 0o644))
	for _, k := range []string{"SITE_NAME", "SITE_URL", "COOKIE_SECURE", "PROBE_LIMIT"} {
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("CONTENT_DIR", "posts")

	cfg, err := LoadConfig(env)
	require.NoError(t, err)
	assert.Equal(t, "Notebook", cfg.Name)
	assert.Equal(t, "https://notes.example", cfg.URL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 5, cfg.ProbeLimit)
	assert.Equal(t, "posts", cfg.ContentDir)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"COOKIE_SECURE", "maybe"},
		{"PROBE_LIMIT", "many"},
		{"PROBE_LIMIT", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("FOLIO_TEST_VALUE", "")
	assert.Equal(t, "fallback", EnvOr("FOLIO_TEST_VALUE", "fallback"))
	t.Setenv("FOLIO_TEST_VALUE", "set")
	assert.Equal(t, "set", EnvOr("FOLIO_TEST_VALUE", "fallback"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello, World!", "hello-world"},
		{"  Go 1.24 & os.Root  ", "go-1-24-os-root"},
		{"---", ""},
		{"Ünïcode Title", "n-code-title"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://example.com/blog/alpha/", BuildURL("https://example.com", "blog", "alpha"))
	assert.Equal(t, "https://example.com/sub/blog/", BuildURL("https://example.com/sub", "blog"))
	assert.Equal(t, "https://example.com", BuildURL("https://example.com"))
}
