package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/vmunix/janitarr/internal/media"
)

// SMTPConfig configures the mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// Mailer delivers notices over SMTP.
type Mailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates an SMTP notifier.
func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

var reminderTmpl = template.Must(template.New("reminder").Parse(`<html>
<body>
<p>Your requested media <strong>{{.Title}}</strong> will be removed in {{.DaysLeft}} day{{if ne .DaysLeft 1}}s{{end}}.</p>
{{if .Poster}}<p><img src="{{.Poster}}" alt="{{.Title}}" width="200"></p>{{end}}
<p>If you want to keep it longer, request a one-time extension before it is removed. Watch it or lose it.</p>
</body>
</html>`))

var deletionTmpl = template.Must(template.New("deletion").Parse(`<html>
<body>
<p>Your requested media <strong>{{.Title}}</strong> has been removed.</p>
{{if .Poster}}<p><img src="{{.Poster}}" alt="{{.Title}}" width="200"></p>{{end}}
<p>You can request it again at any time.</p>
</body>
</html>`))

type noticeData struct {
	Title    string
	Poster   string
	DaysLeft int
}

// SendReminder delivers a retention reminder.
func (m *Mailer) SendReminder(_ context.Context, email string, info *media.Info, daysLeft int) error {
	subject := fmt.Sprintf("Reminder: %q leaves the library in %d days", info.Title, daysLeft)
	body, err := render(reminderTmpl, noticeData{Title: info.Title, Poster: info.Poster, DaysLeft: daysLeft})
	if err != nil {
		return err
	}
	return m.mail(email, subject, body)
}

// SendDeletion delivers a deletion notice.
func (m *Mailer) SendDeletion(_ context.Context, email string, info *media.Info) error {
	subject := fmt.Sprintf("%q has been removed from the library", info.Title)
	body, err := render(deletionTmpl, noticeData{Title: info.Title, Poster: info.Poster})
	if err != nil {
		return err
	}
	return m.mail(email, subject, body)
}

func render(tmpl *template.Template, data noticeData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s notice: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func (m *Mailer) mail(to, subject, htmlBody string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
