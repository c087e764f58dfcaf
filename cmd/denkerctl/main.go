// Command denkerctl is the operator tool for the denker puzzle server.
//
// Usage:
//
//	denkerctl validate [puzzles.yaml]   Check a puzzle catalog and print each solution
//	denkerctl hash-secret <secret>      Print a bcrypt hash for ADMIN_SECRET_HASH
//	denkerctl endpoint --stack NAME     Print the API endpoint from a CloudFormation stack
//	denkerctl ping --url URL --secret S Call /admin/stats on a running server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "denkerctl",
		Short:         "Operate the denker puzzle server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newValidateCmd(),
		newHashSecretCmd(),
		newEndpointCmd(),
		newPingCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
