// Package mail dispatches contact-form submissions to the store's
// fixed recipient address.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// ContactMessage carries the structured fields of a contact-form
// submission. Phone is optional.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type Mailer interface {
	SendContact(msg ContactMessage) error
}

// SMTPMailer delivers through a plain SMTP relay. Recipient is the
// fixed store address; the visitor's email goes into Reply-To.
type SMTPMailer struct {
	Host string
	Port string
	From string
	To   string
}

func NewSMTPMailer(host, port, from, to string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, From: from, To: to}
}

func (m *SMTPMailer) SendContact(msg ContactMessage) error {
	addr := m.Host + ":" + m.Port

	var body strings.Builder
	body.WriteString("Nom: " + msg.Name + "\r\n")
	body.WriteString("Email: " + msg.Email + "\r\n")
	if msg.Phone != "" {
		body.WriteString("Téléphone: " + msg.Phone + "\r\n")
	}
	body.WriteString("\r\n" + msg.Message + "\r\n")

	raw := "From: " + m.From + "\r\n" +
		"To: " + m.To + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"Subject: " + fmt.Sprintf("Nouveau message de %s", msg.Name) + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body.String()

	return smtp.SendMail(addr, nil, m.From, []string{m.To}, []byte(raw))
}
