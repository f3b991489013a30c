package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	baseURL string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:           "pixctl",
		Short:         "pixctl - command line client for the PIX checkout session API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "http://localhost:8080", "API base URL")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(createCmd(opts))
	rootCmd.AddCommand(getCmd(opts))
	rootCmd.AddCommand(recheckCmd(opts))
	rootCmd.AddCommand(countdownCmd(opts))
	return rootCmd
}

func createCmd(opts *globalOptions) *cobra.Command {
	var (
		name, document, email, phone, amount, description string
		mediated                                          bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a PIX payment session",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"name":        name,
				"document":    document,
				"email":       email,
				"phone":       phone,
				"amount":      amount,
				"description": description,
			}
			headers := map[string]string{}
			if mediated {
				headers["X-Payment-Path"] = "mediated"
			}
			return runRequest(cmd, opts, http.MethodPost, "/v1/sessions", headers, payload)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Customer name")
	cmd.Flags().StringVarP(&document, "document", "d", "", "Customer CPF")
	cmd.Flags().StringVar(&email, "email", "", "Customer email")
	cmd.Flags().StringVar(&phone, "phone", "", "Customer phone")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount in major units, e.g. 79.90")
	cmd.Flags().StringVar(&description, "description", "", "Charge description")
	cmd.Flags().BoolVar(&mediated, "mediated", false, "Skip the direct provider path")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func getCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [session-id]",
		Short: "Show a payment session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, opts, http.MethodGet, sessionPath(args[0], ""), nil, nil)
		},
	}
}

func recheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recheck [session-id]",
		Short: "Force a provider status check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, opts, http.MethodPost, sessionPath(args[0], "/recheck"), nil, nil)
		},
	}
}

func countdownCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "countdown [session-id]",
		Short: "Show the time left before the charge expires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, opts, http.MethodGet, sessionPath(args[0], "/countdown"), nil, nil)
		},
	}
}

func runRequest(cmd *cobra.Command, opts *globalOptions, method, path string, headers map[string]string, payload any) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	raw, err := newAPIClient(opts.baseURL, opts.timeout).do(ctx, method, path, headers, payload)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		out.Reset()
		out.Write(raw)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.String())
	return nil
}
