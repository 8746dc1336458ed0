// Package notify sends the outcome of listing verification runs to chat, mail, webhook
// or script channels.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"os"
	"strings"
	"time"

	ntfy "github.com/go-pkgz/notify"
)

// Run statuses.
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// Params configures a Service. Filled from the notify_* config keys.
type Params struct {
	Channels      []string
	OnError       bool
	OnComplete    bool
	TimeoutMs     int
	TelegramToken string
	TelegramChat  string
	SlackToken    string
	SlackChannel  string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPStartTLS  bool
	EmailFrom     string
	EmailTo       []string
	WebhookURLs   []string
	CustomScript  string
}

// Result is the outcome of one verification run.
type Result struct {
	RunID     string   `json:"run_id"`
	Status    string   `json:"status"` // passed or failed
	DeployURL string   `json:"deploy_url"`
	Build     string   `json:"build"`
	Targets   []string `json:"targets"`
	Checks    int      `json:"checks"`
	Failed    int      `json:"failed"`
	Duration  string   `json:"duration"`
	Mismatch  string   `json:"mismatch,omitempty"` // first mismatch, when a listing diverged
	Error     string   `json:"error,omitempty"`
}

// Service sends results to the configured channels.
type Service struct {
	channels   []channel
	hook       *scriptHook
	onError    bool
	onComplete bool
	timeout    time.Duration
	hostname   string
	log        logger
}

// channel pairs a notifier with its destination uri.
type channel struct {
	notifier   ntfy.Notifier
	dest       string
	htmlEscape bool // telegram uses html parse mode
}

type logger interface {
	Print(format string, args ...any)
}

// New creates a Service from p. Returns nil, nil when no channels are configured; Send is nil-safe.
func New(p Params, log logger) (*Service, error) {
	if len(p.Channels) == 0 {
		return nil, nil //nolint:nilnil // nil service means notifications are off
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	svc := &Service{
		onError:    p.OnError,
		onComplete: p.OnComplete,
		timeout:    time.Duration(p.TimeoutMs) * time.Millisecond,
		hostname:   hostname,
		log:        log,
	}
	if svc.timeout <= 0 {
		svc.timeout = 10 * time.Second
	}

	for _, name := range p.Channels {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "telegram":
			if p.TelegramToken == "" || p.TelegramChat == "" {
				return nil, errors.New("telegram channel: notify_telegram_token and notify_telegram_chat are required")
			}
			ch, chErr := telegramChannelMaker(p)
			if chErr != nil {
				// the bot token is verified online; a dead network should not stop the run
				log.Print("[WARN] telegram channel disabled: %s", strings.ReplaceAll(chErr.Error(), p.TelegramToken, "[REDACTED]"))
				continue
			}
			svc.channels = append(svc.channels, ch)
		case "email":
			ch, chErr := makeEmailChannel(p)
			if chErr != nil {
				return nil, fmt.Errorf("email channel: %w", chErr)
			}
			svc.channels = append(svc.channels, ch)
		case "slack":
			if p.SlackToken == "" || p.SlackChannel == "" {
				return nil, errors.New("slack channel: notify_slack_token and notify_slack_channel are required")
			}
			svc.channels = append(svc.channels, channel{notifier: ntfy.NewSlack(p.SlackToken), dest: "slack:" + p.SlackChannel})
		case "webhook":
			if len(p.WebhookURLs) == 0 {
				return nil, errors.New("webhook channel: notify_webhook_urls is required")
			}
			wh := ntfy.NewWebhook(ntfy.WebhookParams{})
			for _, u := range p.WebhookURLs {
				svc.channels = append(svc.channels, channel{notifier: wh, dest: u})
			}
		case "custom":
			if p.CustomScript == "" {
				return nil, errors.New("custom channel: notify_custom_script is required")
			}
			svc.hook = newScriptHook(p.CustomScript)
		default:
			return nil, fmt.Errorf("unknown notification channel: %q", name)
		}
	}

	if len(svc.channels) == 0 && svc.hook == nil {
		log.Print("[WARN] no notification channel left after initialization errors")
	}
	return svc, nil
}

// Send delivers r unless filtered out by the on_error/on_complete settings.
// Delivery failures are logged, never returned.
func (s *Service) Send(ctx context.Context, r Result) {
	if s == nil {
		return
	}
	if r.Status == StatusPassed && !s.onComplete {
		return
	}
	if r.Status == StatusFailed && !s.onError {
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg := s.formatMessage(r)
	for _, ch := range s.channels {
		text := msg
		if ch.htmlEscape {
			text = html.EscapeString(msg)
		}
		if err := ch.notifier.Send(sendCtx, ch.dest, text); err != nil {
			s.log.Print("[WARN] notification failed for %s: %v", ch.notifier, err)
		}
	}
	if s.hook != nil {
		if err := s.hook.run(sendCtx, r); err != nil {
			s.log.Print("[WARN] custom notification failed: %v", err)
		}
	}
}

// formatMessage renders r as plain text.
func (s *Service) formatMessage(r Result) string {
	var b strings.Builder
	verdict := "passed"
	if r.Status != StatusPassed {
		verdict = "FAILED"
	}
	fmt.Fprintf(&b, "lg2e2e verification %s on %s\n\n", verdict, s.hostname)

	if r.DeployURL != "" {
		fmt.Fprintf(&b, "deploy:   %s (build %s)\n", r.DeployURL, r.Build)
	}
	if len(r.Targets) > 0 {
		fmt.Fprintf(&b, "targets:  %s\n", strings.Join(r.Targets, ", "))
	}
	fmt.Fprintf(&b, "checks:   %d, failed %d\n", r.Checks, r.Failed)
	if r.Duration != "" {
		fmt.Fprintf(&b, "duration: %s\n", r.Duration)
	}
	if r.Mismatch != "" {
		fmt.Fprintf(&b, "mismatch: %s\n", r.Mismatch)
	}
	if r.Error != "" {
		fmt.Fprintf(&b, "error:    %s\n", r.Error)
	}
	if r.RunID != "" {
		fmt.Fprintf(&b, "run:      %s\n", r.RunID)
	}
	return b.String()
}

// telegramChannelMaker is replaced in tests, the real one calls the telegram api.
var telegramChannelMaker = makeTelegramChannel

func makeTelegramChannel(p Params) (channel, error) {
	tg, err := ntfy.NewTelegram(ntfy.TelegramParams{Token: p.TelegramToken})
	if err != nil {
		return channel{}, fmt.Errorf("create telegram notifier: %w", err)
	}
	return channel{notifier: tg, dest: fmt.Sprintf("telegram:%s?parseMode=HTML", p.TelegramChat), htmlEscape: true}, nil
}

func makeEmailChannel(p Params) (channel, error) {
	switch {
	case p.SMTPHost == "":
		return channel{}, errors.New("notify_smtp_host is required")
	case p.EmailFrom == "":
		return channel{}, errors.New("notify_email_from is required")
	case len(p.EmailTo) == 0:
		return channel{}, errors.New("notify_email_to is required")
	}

	em := ntfy.NewEmail(ntfy.SMTPParams{
		Host:     p.SMTPHost,
		Port:     p.SMTPPort,
		Username: p.SMTPUsername,
		Password: p.SMTPPassword,
		StartTLS: p.SMTPStartTLS,
	})
	dest := fmt.Sprintf("mailto:%s?from=%s&subject=%s",
		strings.Join(p.EmailTo, ","), url.QueryEscape(p.EmailFrom), url.QueryEscape("lg2e2e verification"))
	return channel{notifier: em, dest: dest}, nil
}
