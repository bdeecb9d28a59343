// Package emailsvc holds the core.EmailService implementations.
package emailsvc

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core"
)

var ErrUnknownBackend = errors.New("unknown email backend")

// New returns the service named by conf.EmailBackend; when unset, the console
// service in debug and sendgrid otherwise.
// With wait, SendMessages returns only once every message is handled, as short-lived commands need.
func New(ctx context.Context, conf *core.Config, logger core.Logger, wait bool) (core.EmailService, error) {
	backend := conf.EmailBackend
	if backend == "" {
		backend = core.EmailSendgrid
		if conf.Debug {
			backend = core.EmailConsole
		}
	}

	switch backend {
	case core.EmailConsole:
		if wait {
			return NewConsoleServiceSync(conf, logger, os.Stdout), nil
		}
		return NewConsoleService(conf, logger), nil
	case core.EmailSendgrid:
		if wait {
			return NewSendgridServiceSync(conf, logger), nil
		}
		return NewSendgridService(conf, logger), nil
	case core.EmailSES:
		svc, err := NewSESService(ctx, conf, logger)
		if err != nil {
			return nil, err
		}
		svc.(*sesService).wait = wait
		return svc, nil
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", backend)
	}
}
