package mailer

import (
	"context"
	"strconv"

	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
)

const (
	BackendSMTP     = "smtp"
	BackendSendgrid = "sendgrid"
	BackendConsole  = "console"
)

// Config is the process level transport configuration.
type Config struct {
	Backend     string
	SMTP        SMTPConfig
	AdminEmail  string
	SendgridKey string
	FromName    string
}

// SettingsReader is the part of the settings store the notifier needs.
type SettingsReader interface {
	All() (map[string]string, error)
}

type Notifier struct {
	settings SettingsReader
	defaults Config
	log      *logger.Logger

	newSMTP  func(SMTPConfig) Sender
	sendgrid Sender
	console  Sender
}

func NewNotifier(settings SettingsReader, defaults Config, log *logger.Logger) *Notifier {
	if defaults.FromName == "" {
		defaults.FromName = "Portal Pedagógico Angola"
	}
	n := &Notifier{
		settings: settings,
		defaults: defaults,
		log:      log,
		newSMTP:  func(c SMTPConfig) Sender { return NewSMTP(c) },
		console:  NewConsole(log),
	}
	if defaults.SendgridKey != "" {
		n.sendgrid = NewSendgrid(defaults.SendgridKey, defaults.FromName)
	}
	return n
}

// Resolve merges the saved settings over the process configuration. The
// admin address falls back to the SMTP user.
func (n *Notifier) Resolve() Config {
	cfg := n.defaults
	var saved map[string]string
	if n.settings != nil {
		var err error
		if saved, err = n.settings.All(); err != nil {
			n.log.Warn("could not read mail settings, using configuration", "error", err)
		}
	}

	pick := func(key, fallback string) string {
		if v := saved[key]; v != "" {
			return v
		}
		return fallback
	}
	cfg.SMTP.Host = pick(model.SettingSMTPHost, cfg.SMTP.Host)
	if p, err := strconv.Atoi(saved[model.SettingSMTPPort]); err == nil && p > 0 {
		cfg.SMTP.Port = p
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if v, ok := saved[model.SettingSMTPSecure]; ok && v != "" {
		cfg.SMTP.Secure = v == "true"
	}
	cfg.SMTP.User = pick(model.SettingSMTPUser, cfg.SMTP.User)
	cfg.SMTP.Pass = pick(model.SettingSMTPPass, cfg.SMTP.Pass)
	cfg.AdminEmail = pick(model.SettingAdminEmail, cfg.AdminEmail)
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.SMTP.User
	}
	return cfg
}

// NotifyAdmin sends subject and body to the administrator. simulated is
// true when the message only went to the log.
func (n *Notifier) NotifyAdmin(ctx context.Context, subject, body string) (simulated bool, err error) {
	cfg := n.Resolve()

	from := cfg.SMTP.User
	if from == "" {
		from = cfg.AdminEmail
	}
	msg := Message{From: from, To: cfg.AdminEmail, Subject: subject, Text: body}

	var sender Sender
	switch cfg.Backend {
	case BackendConsole:
	case BackendSendgrid:
		if n.sendgrid != nil && cfg.AdminEmail != "" {
			sender = n.sendgrid
		}
	default:
		if cfg.SMTP.Configured() {
			sender = n.newSMTP(cfg.SMTP)
		}
	}

	if sender == nil {
		return true, n.console.Send(ctx, msg)
	}
	if err := sender.Send(ctx, msg); err != nil {
		n.log.Error("admin notification failed", "transport", sender.Name(), "subject", subject, "error", err)
		return false, err
	}
	n.log.Debug("admin notification sent", "transport", sender.Name(), "subject", subject)
	return false, nil
}
