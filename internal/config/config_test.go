package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"RESUME_CONFIG", "PORT", "TEMPLATE_DIR", "AI_PROVIDER", "AI_SERVICE_URL",
		"OPENAI_API_KEY", "OPENAI_MODEL", "CHROME_PATH", "LOG_LEVEL", "LOG_FORMAT",
		"MAX_UPLOAD_BYTES", "AGENT_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	// keep a stray .env in the package dir out of the way
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "resume.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "8081"
  template_dir: /srv/templates
ai:
  provider: openai
  openai_api_key: from-file
  agent_timeout: 45s
log:
  format: json
`), 0o644))

	t.Setenv("RESUME_CONFIG", path)
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/srv/templates", cfg.Server.TemplateDir)
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "from-file", cfg.AI.OpenAIKey)
	assert.Equal(t, 45*time.Second, cfg.AI.AgentTimeout)
	assert.Equal(t, int64(2048), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.OpenAIModel)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// .env never overrides variables that are already set, even to ""
	require.NoError(t, os.Unsetenv("AI_PROVIDER"))
	require.NoError(t, os.Unsetenv("OPENAI_API_KEY"))
	require.NoError(t, os.WriteFile(".env", []byte("AI_PROVIDER=OpenAI\nOPENAI_API_KEY=sk-test\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("AI_PROVIDER")
		os.Unsetenv("OPENAI_API_KEY")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "sk-test", cfg.AI.OpenAIKey)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown provider":   {"AI_PROVIDER": "gemini"},
		"openai without key": {"AI_PROVIDER": "openai"},
		"bad size":           {"MAX_UPLOAD_BYTES": "lots"},
		"bad timeout":        {"AGENT_TIMEOUT": "soon"},
		"missing file":       {"RESUME_CONFIG": "/does/not/exist.yaml"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
