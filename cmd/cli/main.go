package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/bankist/internal/adapter/http/dto"
)

var (
	baseURL        string
	timeout        time.Duration
	idempotencyKey string
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bankist-cli",
		Short:         "Bankist CLI tool",
		Long:          `A command line interface for interacting with the Bankist API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Bankist API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency-Key header for mutating commands")

	rootCmd.AddCommand(
		accountsCmd(),
		loginCmd(),
		viewCmd(),
		transferCmd(),
		loanCmd(),
		sortCmd(),
		closeCmd(),
	)

	return rootCmd
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var accounts []dto.AccountResponse
			if err := newClient().do(cmd.Context(), http.MethodGet, "/api/v1/accounts", nil, &accounts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderAccounts(accounts))
			return nil
		},
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <pin>",
		Short: "Log in and show the account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := parsePin(args[1])
			if err != nil {
				return err
			}
			return viewAction(cmd, "/api/v1/session/login", dto.LoginRequest{Username: args[0], Pin: pin})
		},
	}
}

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var view dto.ViewResponse
			if err := newClient().do(cmd.Context(), http.MethodGet, "/api/v1/session", nil, &view); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderView(view))
			return nil
		},
	}
}

func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <to> <amount>",
		Short: "Transfer money to another user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			return viewAction(cmd, "/api/v1/transfers", dto.TransferRequest{To: args[0], Amount: amount})
		},
	}
}

func loanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loan <amount>",
		Short: "Request a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			var resp dto.LoanResponse
			err = newClient().do(cmd.Context(), http.MethodPost, "/api/v1/loans", dto.LoanRequest{Amount: amount}, &resp)
			if err != nil {
				return reportActionError(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, noticeStyle.Render(fmt.Sprintf("Loan of %s approved, credited at %s",
				resp.Amount.String(), resp.CreditsAt.Format(time.Kitchen))))
			if resp.View != nil {
				fmt.Fprintln(out, renderView(*resp.View))
			}
			return nil
		},
	}
}

func sortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Toggle movement sort order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viewAction(cmd, "/api/v1/session/sort", nil)
		},
	}
}

func closeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <username> <pin>",
		Short: "Close the logged-in account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := parsePin(args[1])
			if err != nil {
				return err
			}
			return viewAction(cmd, "/api/v1/accounts/close", dto.CloseAccountRequest{Username: args[0], Pin: pin})
		},
	}
}

// viewAction posts body to path and renders the returned view.
func viewAction(cmd *cobra.Command, path string, body any) error {
	var view dto.ViewResponse
	if err := newClient().do(cmd.Context(), http.MethodPost, path, body, &view); err != nil {
		return reportActionError(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderView(view))
	return nil
}

// reportActionError renders the view a rejected action left behind.
func reportActionError(cmd *cobra.Command, err error) error {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.resp.View != nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderView(*apiErr.resp.View))
	}
	return err
}

func parsePin(s string) (int, error) {
	pin, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid pin %q", s)
	}
	return pin, nil
}

type client struct {
	base string
	http *http.Client
	key  string
}

func newClient() *client {
	return &client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
		key:  idempotencyKey,
	}
}

type apiError struct {
	status int
	resp   dto.ErrorResponse
}

func (e *apiError) Error() string {
	msg := e.resp.Error
	if e.resp.Message != "" {
		msg += ": " + e.resp.Message
	}
	if e.resp.Outcome != "" {
		msg += " (" + e.resp.Outcome + ")"
	}
	return fmt.Sprintf("request failed with status %d: %s", e.status, msg)
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" && method == http.MethodPost {
		req.Header.Set("Idempotency-Key", c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &apiError{status: resp.StatusCode}
		if err := json.Unmarshal(raw, &apiErr.resp); err != nil || apiErr.resp.Error == "" {
			apiErr.resp.Error = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
