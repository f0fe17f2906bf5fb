// services/mail_service.go
package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"time"
)

type IMailService interface {
	SendMailToNotifyUser(to, subject, body string) error
	SendPaymentReceipt(to, name, transactionID string, amount float64, currency string) error
}

// SMTPConfig holds your SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // e.g. 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@tradewise.in"
	FromName   string
	UseSSL     bool // true for SMTPS 465, false for STARTTLS 587

	AppName    string
	AppBaseURL string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	htmlTpl := template.Must(template.New("mailHTML").Parse(baseHTMLTemplate))
	textTpl := template.Must(template.New("mailText").Parse(plainTextTemplate))

	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: htmlTpl,
		textTpl: textTpl,
	}, nil
}

// ------------------- Public API -------------------

func (s *smtpMailService) SendMailToNotifyUser(to, subject, body string) error {
	html, text, err := s.renderEmail(emailData{
		Title:   subject,
		Intro:   body,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendPaymentReceipt(to, name, transactionID string, amount float64, currency string) error {
	subject := "Payment received"
	intro := fmt.Sprintf(
		"Hi %s, we received your payment of %.2f %s. Keep transaction id %s for your records; quote it if you ever contact support about this payment.",
		name, amount, currency, transactionID,
	)

	html, text, err := s.renderEmail(emailData{
		Title:   subject,
		Intro:   intro,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

// ------------------- Rendering -------------------

type emailData struct {
	Title   string
	Intro   string
	AppName string
	Year    int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background:#0f172a;color:#f1f5f9;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;">
  <div style="width:100%;padding:40px 16px;box-sizing:border-box;">
    <div style="max-width:600px;margin:0 auto;background:#1e293b;border-radius:16px;overflow:hidden;">
      <div style="padding:32px 32px 24px;border-bottom:1px solid rgba(148,163,184,0.1);">
        <div style="font-weight:700;letter-spacing:0.5px;font-size:22px;color:#60a5fa;text-transform:uppercase;">{{.AppName}}</div>
      </div>
      <div style="padding:40px 32px;">
        <h1 style="margin:0 0 16px;font-size:28px;font-weight:700;">{{.Title}}</h1>
        <p style="margin:0;line-height:1.6;color:#cbd5e1;">{{.Intro}}</p>
      </div>
      <div style="padding:24px 32px;color:#64748b;font-size:13px;border-top:1px solid rgba(148,163,184,0.1);">
        © {{.Year}} {{.AppName}}. All rights reserved.
      </div>
    </div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}

— {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data emailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer

	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// ------------------- SMTP Send -------------------

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	fromHeader := fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From)
	date := time.Now().Format(time.RFC1123Z)
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	// Headers
	write("From: %s\r\n", fromHeader)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", date)
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	// Plaintext part
	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	// HTML part
	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	// End
	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		if err = c.Auth(auth); err != nil {
			return err
		}
		if err = c.Mail(s.cfg.From); err != nil {
			return err
		}
		if err = c.Rcpt(to); err != nil {
			return err
		}
		w, err := c.Data()
		if err != nil {
			return err
		}
		if _, err = w.Write(msg.Bytes()); err != nil {
			return err
		}
		return w.Close()
	}

	// STARTTLS path (typically port 587)
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	}

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}
