package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	var url, secret, header string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Call /admin/stats on a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			body, err := ping(ctx, http.DefaultClient, url, header, secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://localhost:5175", "Server base URL")
	cmd.Flags().StringVar(&secret, "secret", "", "Admin secret")
	cmd.Flags().StringVar(&header, "header", "x-amz-secret", "Admin secret header name")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

func ping(ctx context.Context, c *http.Client, base, header, secret string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(base, "/")+"/admin/stats", nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(header, secret)

	resp, err := c.Do(req)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	return strings.TrimSpace(string(b)), nil
}
