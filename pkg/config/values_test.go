package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesLoader_Load_EmbeddedOnly(t *testing.T) {
	values, err := newValuesLoader(defaultsFS).Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", values.DeployURL)
	assert.Equal(t, "0", values.BuildNumber)
	assert.Equal(t, "chromium", values.Browser)
	assert.True(t, values.Headless)
	assert.True(t, values.HeadlessSet)
	assert.Equal(t, 0, values.SlowMoMs)
	assert.True(t, values.SlowMoMsSet)
	assert.Equal(t, 5000, values.TimeoutMs)
	assert.Equal(t, ".lg2e2e/screenshots", values.ScreenshotsDir)
	assert.InDelta(t, 0, values.APIRPS, 0.001)
	assert.Equal(t, 2, values.Concurrency)
	assert.Empty(t, values.NotifyChannels)
	assert.True(t, values.NotifyOnError)
	assert.False(t, values.NotifyOnComplete)
	assert.True(t, values.NotifyOnCompleteSet)
	assert.Empty(t, values.NotifyTelegramToken, "commented keys stay unset")
}

func TestValuesLoader_Load_CommentedTemplateFallsBack(t *testing.T) {
	global := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(global, []byte("# deploy_url = https://nope\n\n   # browser = webkit\n"), 0o600))

	values, err := newValuesLoader(defaultsFS).Load("", global)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", values.DeployURL)
	assert.Equal(t, "chromium", values.Browser)
}

func TestValuesLoader_Load_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	values, err := newValuesLoader(defaultsFS).Load(filepath.Join(dir, "nope"), filepath.Join(dir, "none"))
	require.NoError(t, err)
	assert.Equal(t, "chromium", values.Browser)
}

func TestValuesLoader_parseValuesFromBytes(t *testing.T) {
	vl := newValuesLoader(defaultsFS)

	t.Run("lists and notify keys", func(t *testing.T) {
		values, err := vl.parseValuesFromBytes([]byte(`
notify_channels = slack, webhook ,
notify_webhook_urls = https://hooks.example.com/a,https://hooks.example.com/b#frag
notify_email_to = qa@leggera.dev
notify_smtp_port = 2525
notify_smtp_starttls = false
api_rps = 2.5
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"slack", "webhook"}, values.NotifyChannels)
		assert.Equal(t, []string{"https://hooks.example.com/a", "https://hooks.example.com/b#frag"}, values.NotifyWebhookURLs)
		assert.Equal(t, []string{"qa@leggera.dev"}, values.NotifyEmailTo)
		assert.Equal(t, 2525, values.NotifySMTPPort)
		assert.False(t, values.NotifySMTPStartTLS)
		assert.True(t, values.NotifySMTPStartSet)
		assert.InDelta(t, 2.5, values.APIRPS, 0.001)
		assert.True(t, values.APIRPSSet)
	})

	t.Run("empty value leaves field unset", func(t *testing.T) {
		values, err := vl.parseValuesFromBytes([]byte("headless =\ntimeout_ms =\n"))
		require.NoError(t, err)
		assert.False(t, values.HeadlessSet)
		assert.False(t, values.TimeoutMsSet)
	})

	errCases := []struct {
		name, input, want string
	}{
		{"bad bool", "headless = maybe", "invalid headless"},
		{"bad int", "slow_mo_ms = slow", "invalid slow_mo_ms"},
		{"negative int", "timeout_ms = -1", "must be non-negative"},
		{"negative float", "api_rps = -0.5", "must be non-negative"},
		{"unknown browser", "browser = netscape", `invalid browser "netscape"`},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := vl.parseValuesFromBytes([]byte(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValues_mergeFrom(t *testing.T) {
	dst := Values{DeployURL: "a", Browser: "chromium", Headless: true, HeadlessSet: true, Concurrency: 2, ConcurrencySet: true,
		NotifyChannels: []string{"slack"}}
	src := Values{BuildNumber: "9", Headless: false, HeadlessSet: true, Concurrency: 0, ConcurrencySet: true}
	dst.mergeFrom(&src)

	assert.Equal(t, "a", dst.DeployURL)
	assert.Equal(t, "9", dst.BuildNumber)
	assert.Equal(t, "chromium", dst.Browser)
	assert.False(t, dst.Headless)
	assert.Equal(t, 0, dst.Concurrency)
	assert.Equal(t, []string{"slack"}, dst.NotifyChannels)
}

func TestStripComments(t *testing.T) {
	assert.Equal(t, "a = 1\n\n", stripComments("# header\na = 1\n  # indented\n"))
}
