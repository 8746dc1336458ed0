package config

import (
	"embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/ini.v1"
)

// Values holds scalar configuration values.
// Fields ending in *Set (e.g., HeadlessSet) track whether that field was explicitly set in config.
// This allows distinguishing explicit false/0 from "not set", so a local config can override
// the global one with zero values.
type Values struct {
	DeployURL        string
	BuildNumber      string
	Browser          string
	Headless         bool
	HeadlessSet      bool // tracks if headless was explicitly set
	SlowMoMs         int
	SlowMoMsSet      bool // tracks if slow_mo_ms was explicitly set
	TimeoutMs        int
	TimeoutMsSet     bool // tracks if timeout_ms was explicitly set
	TestUserPassword string
	ScreenshotsDir   string
	APIRPS           float64
	APIRPSSet        bool // tracks if api_rps was explicitly set
	Concurrency      int
	ConcurrencySet   bool // tracks if concurrency was explicitly set

	NotifyChannels      []string
	NotifyOnError       bool
	NotifyOnErrorSet    bool
	NotifyOnComplete    bool
	NotifyOnCompleteSet bool
	NotifyTimeoutMs     int
	NotifyTimeoutMsSet  bool
	NotifyTelegramToken string
	NotifyTelegramChat  string
	NotifySlackToken    string
	NotifySlackChannel  string
	NotifySMTPHost      string
	NotifySMTPPort      int
	NotifySMTPUsername  string
	NotifySMTPPassword  string
	NotifySMTPStartTLS  bool
	NotifySMTPStartSet  bool
	NotifyEmailFrom     string
	NotifyEmailTo       []string
	NotifyWebhookURLs   []string
	NotifyCustomScript  string
}

var supportedBrowsers = []string{"chromium", "firefox", "webkit"}

// valuesLoader loads Values with embedded filesystem fallback.
type valuesLoader struct {
	embedFS embed.FS
}

// newValuesLoader creates a new valuesLoader with the given embedded filesystem.
func newValuesLoader(embedFS embed.FS) *valuesLoader {
	return &valuesLoader{embedFS: embedFS}
}

// Load loads values from config files with fallback chain: local → global → embedded.
// localConfigPath and globalConfigPath are full paths to config files (not directories).
func (vl *valuesLoader) Load(localConfigPath, globalConfigPath string) (Values, error) {
	embedded, err := vl.parseValuesFromEmbedded()
	if err != nil {
		return Values{}, fmt.Errorf("parse embedded defaults: %w", err)
	}

	global, err := vl.parseValuesFromFile(globalConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse global config: %w", err)
	}

	local, err := vl.parseValuesFromFile(localConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse local config: %w", err)
	}

	// merge: embedded → global → local (local wins)
	result := embedded
	result.mergeFrom(&global)
	result.mergeFrom(&local)
	return result, nil
}

// parseValuesFromFile reads a config file and parses it into Values.
// returns empty Values (not error) if file doesn't exist or contains only comments/whitespace,
// so commented templates fall back to embedded defaults.
func (vl *valuesLoader) parseValuesFromFile(path string) (Values, error) {
	if path == "" {
		return Values{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return Values{}, nil
		}
		return Values{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if strings.TrimSpace(stripComments(string(data))) == "" {
		return Values{}, nil
	}
	return vl.parseValuesFromBytes(data)
}

// parseValuesFromEmbedded parses values from the embedded defaults/config file.
func (vl *valuesLoader) parseValuesFromEmbedded() (Values, error) {
	data, err := vl.embedFS.ReadFile("defaults/config")
	if err != nil {
		return Values{}, fmt.Errorf("read embedded defaults: %w", err)
	}
	return vl.parseValuesFromBytes(data)
}

// parseValuesFromBytes parses configuration from a byte slice into Values.
func (vl *valuesLoader) parseValuesFromBytes(data []byte) (Values, error) {
	// ignoreInlineComment: true prevents # from being treated as inline comment marker
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return Values{}, fmt.Errorf("parse config: %w", err)
	}

	var v Values
	p := &sectionParser{section: cfg.Section("")}

	// deployment
	p.str("deploy_url", &v.DeployURL)
	p.str("build_number", &v.BuildNumber)
	p.str("test_user_password", &v.TestUserPassword)

	// browser
	p.str("browser", &v.Browser)
	p.boolean("headless", &v.Headless, &v.HeadlessSet)
	p.nonNegInt("slow_mo_ms", &v.SlowMoMs, &v.SlowMoMsSet)
	p.nonNegInt("timeout_ms", &v.TimeoutMs, &v.TimeoutMsSet)
	p.str("screenshots_dir", &v.ScreenshotsDir)

	// runner
	p.nonNegFloat("api_rps", &v.APIRPS, &v.APIRPSSet)
	p.nonNegInt("concurrency", &v.Concurrency, &v.ConcurrencySet)

	// notifications
	p.list("notify_channels", &v.NotifyChannels)
	p.boolean("notify_on_error", &v.NotifyOnError, &v.NotifyOnErrorSet)
	p.boolean("notify_on_complete", &v.NotifyOnComplete, &v.NotifyOnCompleteSet)
	p.nonNegInt("notify_timeout_ms", &v.NotifyTimeoutMs, &v.NotifyTimeoutMsSet)
	p.str("notify_telegram_token", &v.NotifyTelegramToken)
	p.str("notify_telegram_chat", &v.NotifyTelegramChat)
	p.str("notify_slack_token", &v.NotifySlackToken)
	p.str("notify_slack_channel", &v.NotifySlackChannel)
	p.str("notify_smtp_host", &v.NotifySMTPHost)
	var portSet bool
	p.nonNegInt("notify_smtp_port", &v.NotifySMTPPort, &portSet)
	p.str("notify_smtp_username", &v.NotifySMTPUsername)
	p.str("notify_smtp_password", &v.NotifySMTPPassword)
	p.boolean("notify_smtp_starttls", &v.NotifySMTPStartTLS, &v.NotifySMTPStartSet)
	p.str("notify_email_from", &v.NotifyEmailFrom)
	p.list("notify_email_to", &v.NotifyEmailTo)
	p.list("notify_webhook_urls", &v.NotifyWebhookURLs)
	p.str("notify_custom_script", &v.NotifyCustomScript)

	if p.err != nil {
		return Values{}, p.err
	}
	if v.Browser != "" && !slices.Contains(supportedBrowsers, v.Browser) {
		return Values{}, fmt.Errorf("invalid browser %q, expected one of %s", v.Browser, strings.Join(supportedBrowsers, ", "))
	}
	return v, nil
}

// sectionParser reads typed keys from an ini section, keeping the first error.
type sectionParser struct {
	section *ini.Section
	err     error
}

func (p *sectionParser) key(name string) (*ini.Key, bool) {
	if p.err != nil {
		return nil, false
	}
	key, err := p.section.GetKey(name)
	if err != nil {
		return nil, false
	}
	return key, true
}

func (p *sectionParser) str(name string, dst *string) {
	if key, ok := p.key(name); ok {
		*dst = strings.TrimSpace(key.String())
	}
}

func (p *sectionParser) boolean(name string, dst, set *bool) {
	key, ok := p.key(name)
	if !ok || strings.TrimSpace(key.String()) == "" {
		return
	}
	val, err := key.Bool()
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %w", name, err)
		return
	}
	*dst, *set = val, true
}

func (p *sectionParser) nonNegInt(name string, dst *int, set *bool) {
	key, ok := p.key(name)
	if !ok || strings.TrimSpace(key.String()) == "" {
		return
	}
	val, err := key.Int()
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %w", name, err)
		return
	}
	if val < 0 {
		p.err = fmt.Errorf("invalid %s: must be non-negative, got %d", name, val)
		return
	}
	*dst, *set = val, true
}

func (p *sectionParser) nonNegFloat(name string, dst *float64, set *bool) {
	key, ok := p.key(name)
	if !ok || strings.TrimSpace(key.String()) == "" {
		return
	}
	val, err := key.Float64()
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %w", name, err)
		return
	}
	if val < 0 {
		p.err = fmt.Errorf("invalid %s: must be non-negative, got %v", name, val)
		return
	}
	*dst, *set = val, true
}

// list parses a comma-separated value, dropping empty items.
func (p *sectionParser) list(name string, dst *[]string) {
	key, ok := p.key(name)
	if !ok {
		return
	}
	for item := range strings.SplitSeq(key.String(), ",") {
		if t := strings.TrimSpace(item); t != "" {
			*dst = append(*dst, t)
		}
	}
}

// mergeFrom merges non-empty values from src into dst.
//
//nolint:gocyclo // flat list of independent fields
func (dst *Values) mergeFrom(src *Values) {
	mergeStr(&dst.DeployURL, src.DeployURL)
	mergeStr(&dst.BuildNumber, src.BuildNumber)
	mergeStr(&dst.Browser, src.Browser)
	mergeStr(&dst.TestUserPassword, src.TestUserPassword)
	mergeStr(&dst.ScreenshotsDir, src.ScreenshotsDir)
	if src.HeadlessSet {
		dst.Headless, dst.HeadlessSet = src.Headless, true
	}
	if src.SlowMoMsSet {
		dst.SlowMoMs, dst.SlowMoMsSet = src.SlowMoMs, true
	}
	if src.TimeoutMsSet {
		dst.TimeoutMs, dst.TimeoutMsSet = src.TimeoutMs, true
	}
	if src.APIRPSSet {
		dst.APIRPS, dst.APIRPSSet = src.APIRPS, true
	}
	if src.ConcurrencySet {
		dst.Concurrency, dst.ConcurrencySet = src.Concurrency, true
	}

	if len(src.NotifyChannels) > 0 {
		dst.NotifyChannels = src.NotifyChannels
	}
	if src.NotifyOnErrorSet {
		dst.NotifyOnError, dst.NotifyOnErrorSet = src.NotifyOnError, true
	}
	if src.NotifyOnCompleteSet {
		dst.NotifyOnComplete, dst.NotifyOnCompleteSet = src.NotifyOnComplete, true
	}
	if src.NotifyTimeoutMsSet {
		dst.NotifyTimeoutMs, dst.NotifyTimeoutMsSet = src.NotifyTimeoutMs, true
	}
	mergeStr(&dst.NotifyTelegramToken, src.NotifyTelegramToken)
	mergeStr(&dst.NotifyTelegramChat, src.NotifyTelegramChat)
	mergeStr(&dst.NotifySlackToken, src.NotifySlackToken)
	mergeStr(&dst.NotifySlackChannel, src.NotifySlackChannel)
	mergeStr(&dst.NotifySMTPHost, src.NotifySMTPHost)
	if src.NotifySMTPPort != 0 {
		dst.NotifySMTPPort = src.NotifySMTPPort
	}
	mergeStr(&dst.NotifySMTPUsername, src.NotifySMTPUsername)
	mergeStr(&dst.NotifySMTPPassword, src.NotifySMTPPassword)
	if src.NotifySMTPStartSet {
		dst.NotifySMTPStartTLS, dst.NotifySMTPStartSet = src.NotifySMTPStartTLS, true
	}
	mergeStr(&dst.NotifyEmailFrom, src.NotifyEmailFrom)
	if len(src.NotifyEmailTo) > 0 {
		dst.NotifyEmailTo = src.NotifyEmailTo
	}
	if len(src.NotifyWebhookURLs) > 0 {
		dst.NotifyWebhookURLs = src.NotifyWebhookURLs
	}
	mergeStr(&dst.NotifyCustomScript, src.NotifyCustomScript)
}

func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// stripComments removes lines starting with # (comment lines) from content.
func stripComments(content string) string {
	var b strings.Builder
	for line := range strings.SplitSeq(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
