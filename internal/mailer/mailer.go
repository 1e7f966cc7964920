package mailer

import (
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/sharpfade/barber-booking/internal/config"
)

type Mailer struct {
	host string
	port int
	user string
	pass string
}

// New devolve nil sem SMTP configurado; quem chama trata o mailer como
// canal opcional.
func New(cfg *config.Config) *Mailer {
	if !cfg.SMTPEnabled() {
		return nil
	}

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}

	return &Mailer{
		host: cfg.SMTPHost,
		port: port,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
	}
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}
