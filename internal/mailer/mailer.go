// Package mailer sends templated transactional email. The Mailer interface
// keeps the SMTP client swappable for a recording mock in tests.
package mailer

type Mailer interface {
	Send(recipient, templateFile string, data any) error
}
