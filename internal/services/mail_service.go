// services/mail_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

type IMailService interface {
	SendPlanReadyNotification(to string, motivation string, actionCount int) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host     string // e.g. "smtp.gmail.com"
	Port     int    // e.g. 587 (STARTTLS)
	Username string
	Password string
	From     string // envelope from, e.g. "no-reply@yourapp.com"
	FromName string

	AppName string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	htmlTpl := template.Must(template.New("planReadyHTML").Parse(planReadyHTMLTemplate))

	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: htmlTpl,
	}, nil
}

type planReadyData struct {
	Motivation  string
	ActionCount int
	AppName     string
	Year        int
}

const planReadyHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Your savings plan is ready</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; color: #0f172a;">
  <h2>Your savings plan is ready</h2>
  <p>We prepared {{.ActionCount}} saving suggestions for your goal: <strong>{{.Motivation}}</strong>.</p>
  <p>Open the app to review, accept or adjust them.</p>
  <p style="color:#64748b; font-size:12px;">&copy; {{.Year}} {{.AppName}}</p>
</body>
</html>`

func (s *smtpMailService) SendPlanReadyNotification(to string, motivation string, actionCount int) error {
	var htmlBuf bytes.Buffer
	if err := s.htmlTpl.Execute(&htmlBuf, planReadyData{
		Motivation:  motivation,
		ActionCount: actionCount,
		AppName:     s.cfg.AppName,
		Year:        time.Now().Year(),
	}); err != nil {
		return err
	}

	return s.send(to, "Your savings plan is ready", htmlBuf.String())
}

func (s *smtpMailService) send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg.Bytes())
}
