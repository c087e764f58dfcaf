package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/spf13/cobra"
)

const defaultOutputKey = "AdminApiEndpoint"

// stackDescriber is the part of the CloudFormation client endpoint needs.
type stackDescriber interface {
	DescribeStacks(ctx context.Context, in *cloudformation.DescribeStacksInput, opts ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
}

func newEndpointCmd() *cobra.Command {
	var stack, profile, outputKey string

	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "Print the API endpoint published by a CloudFormation stack",
		Long: `Endpoint reads the outputs of a deployed CloudFormation stack and prints the
value of the requested output key.

Examples:
    denkerctl endpoint --stack denker-prod
    denkerctl endpoint --stack denker-prod --profile ops --output-key PublicApiEndpoint`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			cfg, err := config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(profile))
			if err != nil {
				return fmt.Errorf("load AWS config: %w", err)
			}
			v, err := stackOutput(ctx, cloudformation.NewFromConfig(cfg), stack, outputKey)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	cmd.Flags().StringVar(&stack, "stack", "", "CloudFormation stack name")
	cmd.Flags().StringVar(&profile, "profile", "default", "AWS shared config profile")
	cmd.Flags().StringVar(&outputKey, "output-key", defaultOutputKey, "Stack output to print")
	_ = cmd.MarkFlagRequired("stack")

	return cmd
}

// stackOutput returns the value of output key from the named stack.
func stackOutput(ctx context.Context, c stackDescriber, stack, key string) (string, error) {
	resp, err := c.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stack),
	})
	if err != nil {
		return "", fmt.Errorf("describe stack %s: %w", stack, err)
	}
	for _, s := range resp.Stacks {
		for _, o := range s.Outputs {
			if aws.ToString(o.OutputKey) == key {
				return aws.ToString(o.OutputValue), nil
			}
		}
	}
	return "", fmt.Errorf("output %s not found in stack %s", key, stack)
}
