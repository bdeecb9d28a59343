package emailsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/mail"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/pkg/errors"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/tests"
)

var conf = &core.Config{
	AppName:          "School Records",
	DefaultFromEmail: mail.Address{Name: "School Records", Address: "noreply@test.cd"},
}

func TestConsoleService(t *testing.T) {
	buf := new(bytes.Buffer)
	svc := NewConsoleServiceSync(conf, &testutil.Logger{}, buf)

	svc.SendMessages(
		&core.EmailMessage{
			To:      []mail.Address{{Address: "head@test.cd"}},
			Subject: "Dashboard",
			BodyStr: "6 students",
		},
		&core.EmailMessage{Subject: "no recipients", BodyStr: "dropped"},
	)

	out := buf.String()
	assert.True(t, strings.Contains(out, "Subject: [School Records] Dashboard"))
	assert.True(t, strings.Contains(out, "To: <head@test.cd>"))
	assert.True(t, strings.Contains(out, "6 students"))
	assert.False(t, strings.Contains(out, "dropped"))
}

func TestSendgridService_prepare(t *testing.T) {
	svc := NewSendgridService(conf, &testutil.Logger{}).(*sendgridService)
	msg := core.EmailMessage{
		To:          []mail.Address{{Name: "Head", Address: "head@test.cd"}},
		Cc:          []mail.Address{{Address: "deputy@test.cd"}},
		Subject:     "Dashboard",
		TextContent: "6 students",
	}

	var payload struct {
		From struct {
			Email string `json:"email"`
		} `json:"from"`
		Personalizations []struct {
			Subject string `json:"subject"`
			To      []struct {
				Email string `json:"email"`
			} `json:"to"`
			Cc []struct {
				Email string `json:"email"`
			} `json:"cc"`
		} `json:"personalizations"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(sgmail.GetRequestBody(svc.prepare(msg)), &payload))

	assert.Equal(t, "noreply@test.cd", payload.From.Email)
	require.Len(t, payload.Personalizations, 1)
	assert.Equal(t, "[School Records] Dashboard", payload.Personalizations[0].Subject)
	assert.Equal(t, "head@test.cd", payload.Personalizations[0].To[0].Email)
	assert.Equal(t, "deputy@test.cd", payload.Personalizations[0].Cc[0].Email)
	require.Len(t, payload.Content, 1)
	assert.Equal(t, "6 students", payload.Content[0].Value)
}

type fakeSES struct {
	mu   sync.Mutex
	sent []*sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, in)
	return &sesv2.SendEmailOutput{}, nil
}

func TestSESService(t *testing.T) {
	client := &fakeSES{}
	svc := newSESService(client, conf, &testutil.Logger{})
	svc.wait = true

	svc.SendMessages(
		&core.EmailMessage{
			To:      []mail.Address{{Name: "Head", Address: "head@test.cd"}},
			Bcc:     []mail.Address{{Address: "archive@test.cd"}},
			Subject: "Dashboard",
			BodyStr: "6 students",
		},
		&core.EmailMessage{Subject: "no recipients", BodyStr: "dropped"},
	)

	require.Len(t, client.sent, 1)
	in := client.sent[0]
	assert.Equal(t, `"School Records" <noreply@test.cd>`, *in.FromEmailAddress)
	assert.Equal(t, []string{`"Head" <head@test.cd>`}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"<archive@test.cd>"}, in.Destination.BccAddresses)
	assert.Empty(t, in.Destination.CcAddresses)
	assert.Equal(t, "[School Records] Dashboard", *in.Content.Simple.Subject.Data)
	assert.Equal(t, "6 students", *in.Content.Simple.Body.Text.Data)
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		backend string
		debug   bool
		want    interface{}
		wantErr error
	}{
		{name: "debug default", debug: true, want: &consoleService{}},
		{name: "default", want: &sendgridService{}},
		{name: "console", backend: core.EmailConsole, want: &consoleService{}},
		{name: "sendgrid", backend: core.EmailSendgrid, debug: true, want: &sendgridService{}},
		{name: "unknown", backend: "pigeon", wantErr: ErrUnknownBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *conf
			c.EmailBackend = tt.backend
			c.Debug = tt.debug
			svc, err := New(ctx, &c, &testutil.Logger{}, false)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, svc)
		})
	}
}
