package mailer

import (
	"bytes"
	"context"
	"fmt"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/app/drivers/mailer"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/dto/requests"
	"healdoctor-service/internal/pkg/exceptions"
	"html/template"
	"net/smtp"
)

const otpTemplate = `<html><body>
<p>Hello,</p>
<p>Your one-time verification code is <strong>{{.Code}}</strong>.</p>
<p>It expires in {{.ExpiresInMinutes}} minutes. If you did not request this code, ignore this email.</p>
</body></html>`

const genericTemplate = `<html><body>
<p>Hello{{if .Name}} {{.Name}}{{end}},</p>
<p>{{.Message}}</p>
{{if .Link}}<p><a href="{{.Link}}">{{.LinkText}}</a></p>{{end}}
</body></html>`

type smtpSender struct {
	Client    *mailer.SMTPClient
	templates *template.Template
}

func NewSMTPSender(client *mailer.SMTPClient) (contracts.EmailSender, error) {
	templates := template.New(constvars.EmailTemplateOTP)
	if _, err := templates.Parse(otpTemplate); err != nil {
		return nil, err
	}
	if _, err := templates.New(constvars.EmailTemplateGeneric).Parse(genericTemplate); err != nil {
		return nil, err
	}
	return &smtpSender{
		Client:    client,
		templates: templates,
	}, nil
}

func (s *smtpSender) Send(ctx context.Context, payload *requests.EmailPayload) error {
	var rendered bytes.Buffer
	err := s.templates.ExecuteTemplate(&rendered, payload.Template, payload.Variables)
	if err != nil {
		return exceptions.ErrTemplateRender(err)
	}

	from := s.Client.EmailSender
	msg := []byte(fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		payload.To, from, payload.Subject, rendered.String(),
	))
	addr := fmt.Sprintf("%s:%d", s.Client.Host, s.Client.Port)
	err = smtp.SendMail(addr, s.Client.Auth, from, []string{payload.To}, msg)
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, s.Client.Host)
	}
	return nil
}
