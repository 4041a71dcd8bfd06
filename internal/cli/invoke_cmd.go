package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Thiru152003/s3-lamda/internal/handler"
)

func newInvokeCmd(opts *rootOptions) *cobra.Command {
	var (
		eventFile string
		requestID string
		failOnErr bool
	)

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Run an S3 notification event file through the handler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := readEvent(cmd.InOrStdin(), eventFile)
			if err != nil {
				return err
			}

			tbl, err := opts.table(cmd.Context())
			if err != nil {
				return err
			}

			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx := lambdacontext.NewContext(cmd.Context(), &lambdacontext.LambdaContext{AwsRequestID: requestID})

			h := handler.New(tbl, opts.cfg, opts.cfg.NewLogger())
			resp, err := h.Handle(ctx, payload)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if failOnErr && resp.StatusCode != 200 {
				return fmt.Errorf("invocation returned status %d", resp.StatusCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&eventFile, "event", "e", "-", "event JSON file, or - for stdin")
	cmd.Flags().StringVar(&requestID, "request-id", "", "invocation id to record (default: random UUID)")
	cmd.Flags().BoolVar(&failOnErr, "fail-on-error", false, "exit non-zero unless every record was stored")
	return cmd
}

func readEvent(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read event from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}
	return data, nil
}
