package core

import (
	"bytes"
	"net/mail"
	"text/template"

	"github.com/pkg/errors"
)

// EmailMessage is a plain-text email. Body wins over Template when both are set.
type EmailMessage struct {
	To      []mail.Address
	Cc      []mail.Address
	Bcc     []mail.Address
	Subject string
	BodyStr string

	Template     *template.Template
	TemplateData interface{}
	TextContent  string // set by Render
}

// EmailService sends messages; implementations may send concurrently and return early.
type EmailService interface {
	SendMessages(messages ...*EmailMessage)
}

func (m *EmailMessage) Render() error {
	switch {
	case m.BodyStr != "":
		m.TextContent = m.BodyStr
	case m.Template != nil:
		var buf bytes.Buffer
		if err := m.Template.Execute(&buf, m.TemplateData); err != nil {
			return errors.Wrapf(err, "executing template %q", m.Template.Name())
		}
		m.TextContent = buf.String()
	}
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.TextContent != "" }

// ParseAddressList parses a comma separated list of addresses ("a@b.cd, Name <c@d.ef>").
// Blank input yields no addresses.
func ParseAddressList(s string) ([]mail.Address, error) {
	s = CleanString(s)
	if s == "" {
		return nil, nil
	}
	list, err := mail.ParseAddressList(s)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %q", s)
	}
	addrs := make([]mail.Address, 0, len(list))
	for _, a := range list {
		addrs = append(addrs, *a)
	}
	return addrs, nil
}
