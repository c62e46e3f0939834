package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// Mailer delivers HTML mail over implicit-TLS SMTP.
type Mailer struct {
	smtpHost string
	smtpPort string
	username string
	password string
}

// New creates a Mailer for the given SMTP endpoint and credentials.
func New(host, port, user, pass string) *Mailer {
	return &Mailer{
		smtpHost: host,
		smtpPort: port,
		username: user,
		password: pass,
	}
}

// Send delivers a single HTML message. The call is synchronous; a returned
// error means the message was not accepted by the server.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	from := m.username
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" + // required for HTML
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			htmlBody,
	)

	serverAddr := m.smtpHost + ":" + m.smtpPort

	// Implicit TLS for port 465
	tlsConfig := &tls.Config{
		ServerName: m.smtpHost,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.smtpHost)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.username, m.password, m.smtpHost)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return nil
}
