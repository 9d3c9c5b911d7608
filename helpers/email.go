package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	html_tpl "html/template"
	text_tpl "text/template"

	"github.com/shihabsss1/portfolio/utils"
	"github.com/wneessen/go-mail"
)

const smtpTimeout time.Duration = 3 * time.Second

// DefaultTemplateDir holds the <name>.html and <name>.txt email templates.
var DefaultTemplateDir = filepath.Join("templates", "email")

type EmailOpts struct {
	Subject      string   `json:"subject"`
	TemplateName string   `json:"template_name"`
	ToList       []string `json:"to_list"`
	CCList       []string `json:"cc_list"`
	ReplyTo      string   `json:"reply_to"`
}

func (e EmailOpts) IsValid() bool {
	return len(e.Subject) > 0 && len(e.TemplateName) > 0 && len(e.ToList) > 0
}

type Mailer struct {
	client      *mail.Client
	templateDir string
}

func NewMailer(client *mail.Client, templateDir string) *Mailer {
	if len(templateDir) < 1 {
		templateDir = DefaultTemplateDir
	}

	return &Mailer{client: client, templateDir: templateDir}
}

// BuildMessage renders the templates named by opts into a message.
func (m *Mailer) BuildMessage(opts EmailOpts, data map[string]interface{}) (*mail.Msg, error) {
	if len(os.Getenv("EMAIL_FROM")) < 1 {
		return nil, errors.New("The from email address is invalid.")
	}

	if !opts.IsValid() {
		return nil, errors.New("Missing information to send email.")
	}

	tplBase := filepath.Clean(filepath.Join(m.templateDir, filepath.Base(opts.TemplateName)))

	htmlTplFile := filepath.Clean(tplBase + ".html")
	htmlTpl, err := html_tpl.New(filepath.Base(htmlTplFile)).ParseFiles(htmlTplFile)
	if err != nil {
		return nil, fmt.Errorf("Error loading the HTML template: %w", err)
	}

	textTplFile := filepath.Clean(tplBase + ".txt")
	textTpl, err := text_tpl.New(filepath.Base(textTplFile)).ParseFiles(textTplFile)
	if err != nil {
		return nil, fmt.Errorf("Error loading the TEXT template: %w", err)
	}

	msg := mail.NewMsg()
	msg.SetMessageID()
	msg.SetDate()
	msg.Subject(opts.Subject + " - " + os.Getenv("APP_NAME"))

	if err := msg.FromFormat(os.Getenv("APP_NAME"), os.Getenv("EMAIL_FROM")); err != nil {
		return nil, fmt.Errorf("Could not set the from email address: %w", err)
	}

	if len(opts.ReplyTo) > 0 {
		if err := msg.ReplyTo(opts.ReplyTo); err != nil {
			return nil, fmt.Errorf("Could not set the reply-to email address: %w", err)
		}
	}

	if data == nil {
		data = map[string]interface{}{}
	}

	data["Lang"] = utils.EmailLang()
	data["AppName"] = os.Getenv("APP_NAME")
	data["AppDomain"] = os.Getenv("APP_DOMAIN")
	data["Subject"] = opts.Subject
	data["Now"] = time.Now().In(utils.DefaultLocation())

	if err := msg.SetBodyHTMLTemplate(htmlTpl, data); err != nil {
		return nil, fmt.Errorf("Error setting HTML template: %w", err)
	}

	if err := msg.AddAlternativeTextTemplate(textTpl, data); err != nil {
		return nil, fmt.Errorf("Error setting TEXT template: %w", err)
	}

	msg.ToIgnoreInvalid(opts.ToList...)

	if len(opts.CCList) > 0 {
		msg.CcIgnoreInvalid(opts.CCList...)
	}

	return msg, nil
}

func (m *Mailer) Send(ctx context.Context, opts EmailOpts, data map[string]interface{}) error {
	msg, err := m.BuildMessage(opts, data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, smtpTimeout)
	defer cancel()

	return m.client.DialAndSendWithContext(ctx, msg)
}
