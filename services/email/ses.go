package emailsvc

import (
	"context"
	"fmt"
	"net/mail"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core"
)

const charset = "UTF-8"

// sesSender is the part of *sesv2.Client the service uses.
type sesSender interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesService struct {
	client     sesSender
	from       mail.Address
	subjPrefix string
	logger     core.Logger
	wait       bool
}

var _ core.EmailService = (*sesService)(nil)

// NewSESService sends through Amazon SES v2 in conf.AWSRegion.
// Credentials come from the default AWS chain (env, shared config, instance role).
func NewSESService(ctx context.Context, conf *core.Config, logger core.Logger) (core.EmailService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(conf.AWSRegion))
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	return newSESService(sesv2.NewFromConfig(cfg), conf, logger), nil
}

func newSESService(client sesSender, conf *core.Config, logger core.Logger) *sesService {
	return &sesService{
		client:     client,
		from:       conf.DefaultFromEmail,
		subjPrefix: "[" + conf.AppName + "] ",
		logger:     logger,
	}
}

func (svc *sesService) SendMessages(messages ...*core.EmailMessage) {
	var wg sync.WaitGroup
	for _, msg := range messages {
		msg := msg
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := msg.Render(); err != nil {
				svc.logger.Error(fmt.Sprintf("rendering email: %v", err), err)
				return
			}
			if !(msg.HasRecipients() && msg.HasContent()) {
				return
			}
			if _, err := svc.client.SendEmail(context.Background(), svc.prepare(*msg)); err != nil {
				svc.logger.Error(fmt.Sprintf("sending email: %v", err), errors.Wrap(err, "sending email"))
			}
		}()
	}
	if svc.wait {
		wg.Wait()
	}
}

func addressList(addrs []mail.Address) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return out
}

func (svc *sesService) prepare(msg core.EmailMessage) *sesv2.SendEmailInput {
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(svc.from.String()),
		Destination: &types.Destination{
			ToAddresses:  addressList(msg.To),
			CcAddresses:  addressList(msg.Cc),
			BccAddresses: addressList(msg.Bcc),
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(svc.subjPrefix + msg.Subject), Charset: aws.String(charset)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.TextContent), Charset: aws.String(charset)},
				},
			},
		},
	}
}
