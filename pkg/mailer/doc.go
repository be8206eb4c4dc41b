// Package mailer delivers administrator notifications.
//
// A Notifier resolves its transport on every call, preferring the SMTP
// values saved in the settings table over the process configuration. When
// no credentials are available the message is written to the log instead
// and the call reports a simulated delivery.
package mailer
