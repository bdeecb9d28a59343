package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/schoolrecords/core"
	emailsvc "github.com/trezcool/schoolrecords/services/email"
	logsvc "github.com/trezcool/schoolrecords/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	mailer, err := emailsvc.New(context.Background(), conf, logger, true /* wait */)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up email: %v", err), err)
	}

	// start CLI
	cli := commandLine{
		conf:   conf,
		logger: logger,
		mailer: mailer,
		out:    os.Stdout,
	}
	if err = cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		os.Exit(1)
	}
}
