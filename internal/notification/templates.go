package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// Branding is the per-deployment text woven into every email.
type Branding struct {
	AppName  string
	LoginURL string
	LogoURL  string
	Year     int
}

type welcomeData struct {
	Branding
	FirstName    string
	LastName     string
	Email        string
	TempPassword string
}

const welcomeSubject = "Welcome to %s - Your Account Has Been Created"

var welcomeText = texttemplate.Must(texttemplate.New("welcome.txt").Parse(`Welcome to {{.AppName}}

Dear {{.FirstName}} {{.LastName}},

Your account has been successfully created on the {{.AppName}} platform!

Your Login Credentials:
Email: {{.Email}}
Temporary Password: {{.TempPassword}}

Important: Please change your password after your first login for security purposes.

Login URL: {{.LoginURL}}

If you have any questions or need assistance, please contact our support team.

Best regards,
The {{.AppName}} Team
`))

var welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome.html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Welcome to {{.AppName}}</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background-color: #387366; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0;">
    {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.AppName}}" style="height: 50px;" />{{end}}
    <h1 style="margin: 0;">Welcome to {{.AppName}}</h1>
  </div>
  <div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 8px 8px;">
    <p>Dear {{.FirstName}} {{.LastName}},</p>
    <p>Your account has been successfully created on the {{.AppName}} platform!</p>
    <div style="background-color: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #387366;">
      <p><strong>Your Login Credentials:</strong></p>
      <p><strong>Email:</strong> {{.Email}}</p>
      <p><strong>Temporary Password:</strong> {{.TempPassword}}</p>
    </div>
    <p><strong>Important:</strong> Please change your password after your first login for security purposes.</p>
    <p style="text-align: center; margin: 30px 0;">
      <a href="{{.LoginURL}}" style="background-color: #387366; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px;">Login to Your Account</a>
    </p>
    <p>Best regards,<br><strong>The {{.AppName}} Team</strong></p>
  </div>
  <p style="text-align: center; font-size: 12px; color: #666;">&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
</body>
</html>
`))

// LoginURL appends /login to the public app URL.
func LoginURL(appURL string) string {
	return strings.TrimRight(appURL, "/") + "/login"
}

// RenderWelcome renders the welcome email for job.
func RenderWelcome(b Branding, job Job) (Message, error) {
	data := welcomeData{
		Branding:     b,
		FirstName:    job.FirstName,
		LastName:     job.LastName,
		Email:        job.To,
		TempPassword: job.TempPassword,
	}

	var text, html bytes.Buffer
	if err := welcomeText.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("render welcome text: %w", err)
	}
	if err := welcomeHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render welcome html: %w", err)
	}

	return Message{
		To:      job.To,
		Subject: fmt.Sprintf(welcomeSubject, b.AppName),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
