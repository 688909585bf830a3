// Command overduecheck runs one automated action against the configured event store and
// prints the report as JSON. It is meant to be started by cron.
//
// Usage:
//
//	overduecheck [-action daily-notifications] [-env .env]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/borrowdesk/library/automation"
	"github.com/AntonStoeckl/borrowdesk/library/bootstrap"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell/config"
)

func main() {
	action := flag.String("action", string(automation.ActionDailyNotifications),
		"due-date-reminders, overdue-notifications or daily-notifications")
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	if err := run(*action, *envFile); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(actionName string, envFile string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	action, err := automation.ParseAction(actionName)
	if err != nil {
		return err
	}

	c, err := config.Load(envFile)
	if err != nil {
		return err
	}

	logger := config.NewLogger(c, os.Stderr)

	app, err := bootstrap.Open(ctx, c, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := app.Close(context.WithoutCancel(ctx)); closeErr != nil {
			logger.Error("shutdown failed", "error", closeErr)
		}
	}()

	report, runErr := app.Runner.Run(ctx, action)

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(os.Stdout, string(out))

	return runErr
}
