package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/schoolrecords/core"
)

func (cli *commandLine) dashboard(ctx context.Context) error {
	svc, closeStore, err := cli.openService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	dash, err := svc.Dashboard(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(dash)
}

// report emails the dashboard summary to `to`, or to the configured recipients when blank.
func (cli *commandLine) report(ctx context.Context, to string) error {
	recipients := cli.conf.ReportRecipients
	if strings.TrimSpace(to) != "" {
		var err error
		if recipients, err = core.ParseAddressList(to); err != nil {
			return errors.Wrap(err, "parsing -to")
		}
	}

	svc, closeStore, err := cli.openService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	if err = svc.SendDashboardReport(ctx, recipients...); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "dashboard report sent to %d recipient(s)\n", len(recipients))
	return nil
}
