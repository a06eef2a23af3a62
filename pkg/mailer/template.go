package mailer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

// 模板名称, 与发件箱中记录的 template 字段一致
const (
	TemplateConfirm       = "confirm"
	TemplateResetPassword = "reset_password"
	TemplateChangeEmail   = "change_email"
)

type pair struct {
	text *texttpl.Template
	html *htmltpl.Template
}

var templates = map[string]pair{
	TemplateConfirm: {
		text: texttpl.Must(texttpl.New("confirm").Parse(
			"Hello {{.username}},\n\nWelcome to Moments!\n\n" +
				"Please visit the link below to confirm your account:\n\n{{.link}}\n\n" +
				"(Please do not reply to this notification, this inbox is not monitored.)\n")),
		html: htmltpl.Must(htmltpl.New("confirm").Parse(
			`<p>Hello {{.username}},</p><p>Welcome to Moments!</p>` +
				`<p>Please visit <a href="{{.link}}">this link</a> to confirm your account.</p>` +
				`<p><small>(Please do not reply to this notification, this inbox is not monitored.)</small></p>`)),
	},
	TemplateResetPassword: {
		text: texttpl.Must(texttpl.New("reset").Parse(
			"Hello {{.username}},\n\nHere is your password reset link:\n\n{{.link}}\n\n" +
				"(Please do not reply to this notification, this inbox is not monitored.)\n")),
		html: htmltpl.Must(htmltpl.New("reset").Parse(
			`<p>Hello {{.username}},</p>` +
				`<p>Here is your <a href="{{.link}}">password reset link</a>.</p>` +
				`<p><small>(Please do not reply to this notification, this inbox is not monitored.)</small></p>`)),
	},
	TemplateChangeEmail: {
		text: texttpl.Must(texttpl.New("change").Parse(
			"Hello {{.username}},\n\nPlease visit the link below to verify your new email address:\n\n{{.link}}\n\n" +
				"(Please do not reply to this notification, this inbox is not monitored.)\n")),
		html: htmltpl.Must(htmltpl.New("change").Parse(
			`<p>Hello {{.username}},</p>` +
				`<p>Please visit <a href="{{.link}}">this link</a> to verify your new email address.</p>` +
				`<p><small>(Please do not reply to this notification, this inbox is not monitored.)</small></p>`)),
	},
}

// Render 渲染纯文本和 HTML 两种正文
func Render(name string, data map[string]any) (string, string, error) {
	t, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template %q", name)
	}
	var text, html bytes.Buffer
	if err := t.text.Execute(&text, data); err != nil {
		return "", "", err
	}
	if err := t.html.Execute(&html, data); err != nil {
		return "", "", err
	}
	return text.String(), html.String(), nil
}
