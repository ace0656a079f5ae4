package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"hospital-management/cmd/bootstrap"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "hospital",
		Short:         "Hospital records service and reporting tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".env", "path to an env-style config file")

	// withApp initializes the application for one command and closes it
	// afterwards.
	withApp := func(run func(ctx context.Context, app *bootstrap.App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Close()
			return run(cmd.Context(), app, args)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: withApp(func(_ context.Context, app *bootstrap.App, _ []string) error {
				return app.Run()
			}),
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: withApp(func(_ context.Context, app *bootstrap.App, _ []string) error {
				return database.AutoMigrate(app.DB, app.Log)
			}),
		},
		&cobra.Command{
			Use:   "reports",
			Short: "List the available reports and their parameters",
			RunE: withApp(func(_ context.Context, app *bootstrap.App, _ []string) error {
				return printJSON(app.Reports.List())
			}),
		},
		newReportCommand(withApp),
		&cobra.Command{
			Use:   "complete-past",
			Short: "Mark scheduled appointments in the past as completed",
			RunE: withApp(func(ctx context.Context, app *bootstrap.App, _ []string) error {
				result, err := app.Usecases.Scheduling.CompletePastAppointments(ctx)
				if err != nil {
					return err
				}
				return printJSON(result)
			}),
		},
		&cobra.Command{
			Use:   "schedule-follow-ups <doctor-id>",
			Short: "Book follow-ups for a doctor's patients without a scheduled visit",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(func(ctx context.Context, app *bootstrap.App, args []string) error {
				doctorID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid doctor id %q", args[0])
				}
				result, err := app.Usecases.Scheduling.ScheduleFollowUps(ctx, doctorID)
				if err != nil {
					return err
				}
				return printJSON(result)
			}),
		},
		newScheduleMatrixCommand(withApp),
	)

	return root
}

type appRunner func(run func(ctx context.Context, app *bootstrap.App, args []string) error) func(*cobra.Command, []string) error

func newReportCommand(withApp appRunner) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "report <name>",
		Short: "Run one report and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, app *bootstrap.App, args []string) error {
			values, err := parseParams(params)
			if err != nil {
				return err
			}
			result, err := app.Reports.Run(ctx, args[0], values)
			if err != nil {
				return err
			}
			return printJSON(result)
		}),
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "report parameter as key=value, repeatable")
	return cmd
}

func newScheduleMatrixCommand(withApp appRunner) *cobra.Command {
	req := dto.DefaultScheduleMatrixRequest()

	cmd := &cobra.Command{
		Use:   "schedule-matrix",
		Short: "Book every pairing of the first patients and doctors",
		RunE: withApp(func(ctx context.Context, app *bootstrap.App, _ []string) error {
			result, err := app.Usecases.Scheduling.ScheduleMatrix(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(result)
		}),
	}
	cmd.Flags().IntVar(&req.Patients, "patients", req.Patients, "number of patients, lowest ids first")
	cmd.Flags().IntVar(&req.Doctors, "doctors", req.Doctors, "number of doctors, lowest ids first")
	cmd.Flags().IntVar(&req.Days, "days", req.Days, "days from now of the booked slot")
	return cmd
}

func parseParams(params []string) (url.Values, error) {
	values := url.Values{}
	for _, p := range params {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", p)
		}
		values.Set(key, value)
	}
	return values, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
