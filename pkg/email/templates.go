package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"io"
	"net/mail"
	texttemplate "text/template"
)

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Message     string
	OwnerName   string
}

// Sender identifies the operator account messages are sent from.
type Sender struct {
	Name    string
	Account string
}

func (s Sender) address() mail.Address {
	return mail.Address{Name: s.Name, Address: s.Account}
}

const confirmationText = `Hi {{.SenderName}},

Thanks for getting in touch! Your message reached me and I will get back to you soon.

Your message:
{{.Message}}

Best regards,
{{.OwnerName}}
`

// confirmationHTML is the HTML template for the confirmation sent to the submitter
const confirmationHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Thanks for reaching out</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0f172a; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #3b82f6; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Thanks for reaching out, {{.SenderName}}!</h1>
        </div>
        <div class="content">
            <p>Your message reached me and I will get back to you soon.</p>
            <div class="message-box">{{.Message}}</div>
        </div>
        <div class="footer">
            <p>Best regards, {{.OwnerName}}</p>
        </div>
    </div>
</body>
</html>`

const ownerCopyText = `New message from the portfolio contact form.

Name:    {{.SenderName}}
Email:   {{.SenderEmail}}

{{.Message}}
`

// ownerCopyHTML is the HTML template for the copy sent to the site owner
const ownerCopyHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #3b82f6; margin-top: 10px; white-space: pre-wrap; }
    </style>
</head>
<body>
    <div class="container">
        <h1>New Contact Form Submission</h1>
        <div class="field">
            <div class="label">From:</div>
            <div>{{.SenderName}} ({{.SenderEmail}})</div>
        </div>
        <div class="field">
            <div class="label">Message:</div>
            <div class="message-box">{{.Message}}</div>
        </div>
    </div>
</body>
</html>`

var (
	confirmationTextTmpl = texttemplate.Must(texttemplate.New("confirmation.txt").Parse(confirmationText))
	confirmationHTMLTmpl = htmltemplate.Must(htmltemplate.New("confirmation.html").Parse(confirmationHTML))
	ownerCopyTextTmpl    = texttemplate.Must(texttemplate.New("owner.txt").Parse(ownerCopyText))
	ownerCopyHTMLTmpl    = htmltemplate.Must(htmltemplate.New("owner.html").Parse(ownerCopyHTML))
)

// BuildConfirmation renders the message sent back to the person who submitted the form
func BuildConfirmation(from Sender, data ContactEmailData) (Message, error) {
	if data.OwnerName == "" {
		data.OwnerName = from.Name
	}

	text, err := render(confirmationTextTmpl.Execute, data)
	if err != nil {
		return Message{}, fmt.Errorf("failed to execute confirmation text template: %w", err)
	}
	html, err := render(confirmationHTMLTmpl.Execute, data)
	if err != nil {
		return Message{}, fmt.Errorf("failed to execute confirmation html template: %w", err)
	}

	return Message{
		From:    from.address(),
		To:      []string{data.SenderEmail},
		ReplyTo: from.Account,
		Subject: fmt.Sprintf("Thanks for reaching out, %s!", data.SenderName),
		Text:    text,
		HTML:    html,
	}, nil
}

// BuildOwnerCopy renders the notification sent to the operator's own mailbox
func BuildOwnerCopy(from Sender, data ContactEmailData) (Message, error) {
	text, err := render(ownerCopyTextTmpl.Execute, data)
	if err != nil {
		return Message{}, fmt.Errorf("failed to execute owner copy text template: %w", err)
	}
	html, err := render(ownerCopyHTMLTmpl.Execute, data)
	if err != nil {
		return Message{}, fmt.Errorf("failed to execute owner copy html template: %w", err)
	}

	return Message{
		From:    from.address(),
		To:      []string{from.Account},
		ReplyTo: data.SenderEmail,
		Subject: fmt.Sprintf("New portfolio contact from %s", data.SenderName),
		Text:    text,
		HTML:    html,
	}, nil
}

func render(execute func(w io.Writer, data any) error, data ContactEmailData) (string, error) {
	var body bytes.Buffer
	if err := execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
