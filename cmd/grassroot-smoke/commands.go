package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grassroot-hq/grassroot-apiclient/internal/app"
	"github.com/grassroot-hq/grassroot-apiclient/internal/config"
	"github.com/grassroot-hq/grassroot-apiclient/internal/logger"
	"github.com/grassroot-hq/grassroot-apiclient/pkg/grassroot"
)

func newRootCmd(out io.Writer) *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "grassroot-smoke",
		Short:         "Drive the Grassroot REST API from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if _, err := logger.Init(loaded); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger.DebugObj("config loaded", "config", loaded.Redacted())
			cfg = loaded
			return nil
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.String("base-url", "", "Grassroot base URL (default https://localhost:8443)")
	pf.String("api-token", "", "bearer token sent with event.create")
	pf.Bool("insecure-skip-verify", false, "skip TLS certificate verification")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.String("reports-file", "", "YAML or JSON file listing report sinks")

	root.AddCommand(
		newRunCmd(func() *config.Config { return cfg }),
		newCallCmd(func() *config.Config { return cfg }),
		newEndpointsCmd(),
	)
	return root
}

func newRunCmd(cfg func() *config.Config) *cobra.Command {
	var printReport bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the group, event and RSVP smoke scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			smoke, err := app.NewSmoke(cmd.Context(), cfg(), logger.Zap{})
			if err != nil {
				return err
			}
			defer func() {
				if err := smoke.Close(); err != nil {
					logger.WarnObj("report sinks close failed", "error", err.Error())
				}
			}()

			report, runErr := smoke.Run(cmd.Context())
			if printReport && report != nil {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&printReport, "print-report", true, "write the run report as JSON to stdout")
	return cmd
}

func newCallCmd(cfg func() *config.Config) *cobra.Command {
	var body string
	cmd := &cobra.Command{
		Use:   "call <endpoint> [args...]",
		Short: "Invoke one API endpoint and print the response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := grassroot.Lookup(args[0])
			if err != nil {
				return err
			}
			if !ep.JSONBody && cmd.Flags().Changed("body") {
				return fmt.Errorf("%s takes no request body; drop --body", ep.Name)
			}
			client, err := app.NewClient(cfg(), logger.Zap{}, nil)
			if err != nil {
				return err
			}

			segments := segmentArgs(args[1:])
			var result any
			if ep.JSONBody {
				if strings.TrimSpace(body) == "" {
					return fmt.Errorf("%s needs --body", ep.Name)
				}
				var payload any
				if err := json.Unmarshal([]byte(body), &payload); err != nil {
					return fmt.Errorf("parse --body: %w", err)
				}
				result, err = client.CallWithBody(cmd.Context(), ep.Name, payload, segments...)
			} else {
				result, err = client.Call(cmd.Context(), ep.Name, segments...)
			}

			if printErr := printResult(cmd.OutOrStdout(), result); printErr != nil && err == nil {
				err = printErr
			}
			return err
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "JSON request body, only for endpoints that take one (event.create)")
	return cmd
}

func newEndpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the endpoint catalog",
		Args:  cobra.NoArgs,
		// The catalog is static, so config and logging are skipped.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMETHOD\tPATH")
			for _, ep := range grassroot.Catalog() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", ep.Name, ep.Method, ep.Template)
			}
			return tw.Flush()
		},
	}
}

// segmentArgs keeps arguments as strings so phone numbers keep their
// leading zeros; literal true/false become booleans.
func segmentArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		switch strings.ToLower(a) {
		case "true":
			out[i] = true
		case "false":
			out[i] = false
		default:
			out[i] = a
		}
	}
	return out
}

func printResult(w io.Writer, result any) error {
	if raw, ok := result.(*grassroot.RawResponse); ok {
		if raw == nil {
			return nil
		}
		_, err := fmt.Fprintln(w, raw.Text())
		return err
	}
	if result == nil {
		return nil
	}
	return writeJSON(w, result)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
