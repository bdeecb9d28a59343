package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/schoolrecords/apps/api/echo"
	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/records"
	"github.com/trezcool/schoolrecords/core/school"
	emailsvc "github.com/trezcool/schoolrecords/services/email"
	logsvc "github.com/trezcool/schoolrecords/services/logger"
	"github.com/trezcool/schoolrecords/storage"
)

type (
	StoreLoggerParam struct {
		dig.In
		Logger core.Logger `name:"storeLogger"`
	}

	// StoreResult carries the store and the func releasing it.
	StoreResult struct {
		dig.Out
		Store school.Store
		Close storage.Closer
	}
)

func newLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
}

func newStoreLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
}

func newStore(conf *core.Config, loggerParam StoreLoggerParam) (StoreResult, error) {
	store, closeStore, err := storage.Open(context.Background(), conf, loggerParam.Logger)
	if err != nil {
		loggerParam.Logger.Error(fmt.Sprintf("setting up store: %v", err), err)
		return StoreResult{}, err
	}
	return StoreResult{Store: store, Close: closeStore}, nil
}

func newEmailService(conf *core.Config, logger core.Logger) (core.EmailService, error) {
	return emailsvc.New(context.Background(), conf, logger, false)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	school.InitValidators(validate, translator)
	return validate
}

func newRecordsService(
	store school.Store,
	validate *validator.Validate,
	translator ut.Translator,
	logger core.Logger,
	mailer core.EmailService,
) *records.Service {
	return records.NewService(records.Deps{
		Store:      store,
		Validate:   validate,
		Translator: translator,
		Logger:     logger,
		Mailer:     mailer,
	})
}

func newServer(conf *core.Config, logger core.Logger, svc *records.Service) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{Conf: conf, Logger: logger, Records: svc})
}

// New returns a new dependency injection dig.Container.
// newConfig defaults to core.NewConfig.
func New(newConfig ...func() *core.Config) *dig.Container {
	c := dig.New()

	confFunc := core.NewConfig
	if len(newConfig) > 0 {
		confFunc = newConfig[0]
	}

	must(c.Provide(confFunc))
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(newStore))
	must(c.Provide(newEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newRecordsService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
