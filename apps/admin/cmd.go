package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core"
	"github.com/trezcool/schoolrecords/core/records"
	"github.com/trezcool/schoolrecords/core/school"
	"github.com/trezcool/schoolrecords/storage"
)

var (
	errHelp          = errors.New("help provided")
	errNeedsDatabase = errors.New("command needs the database store (set the store backend to \"database\")")
)

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	mailer core.EmailService
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, status, redo, version, ...)")
	fmt.Fprintln(cli.out, "  seed [-fixtures DIR]   - load JSON fixtures into the database store")
	fmt.Fprintln(cli.out, "  dashboard              - print the dashboard statistics")
	fmt.Fprintln(cli.out, "  report [-to EMAILS]    - email the dashboard summary")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedCmd.SetOutput(cli.out)
	seedDir := seedCmd.String("fixtures", "", "Directory holding the JSON fixtures. The embedded fixtures are used when unset.")

	reportCmd := flag.NewFlagSet("report", flag.ContinueOnError)
	reportCmd.SetOutput(cli.out)
	reportTo := reportCmd.String("to", "", "Comma separated recipients. Defaults to the configured report recipients.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(ctx, args[2:])
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.seed(ctx, *seedDir)
	case "dashboard":
		return cli.dashboard(ctx)
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.report(ctx, *reportTo)
	default:
		cli.printUsage()
		return errHelp
	}
}

// openService opens the configured store and a records service over it.
func (cli *commandLine) openService(ctx context.Context) (*records.Service, storage.Closer, error) {
	store, closeStore, err := storage.Open(ctx, cli.conf, cli.logger)
	if err != nil {
		return nil, nil, err
	}

	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)
	school.InitValidators(validate, translator)

	svc := records.NewService(records.Deps{
		Store:      store,
		Validate:   validate,
		Translator: translator,
		Logger:     cli.logger,
		Mailer:     cli.mailer,
	})
	return svc, closeStore, nil
}
