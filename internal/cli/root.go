// Package cli implements ingestctl, which replays S3 notification events
// through the ingestion handler and inspects stored metadata.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Thiru152003/s3-lamda/internal/config"
	"github.com/Thiru152003/s3-lamda/internal/store"
)

// clientFactory returns the DynamoDB API for an endpoint override.
type clientFactory func(ctx context.Context, endpoint string) (store.API, error)

func defaultClient(ctx context.Context, endpoint string) (store.API, error) {
	return store.NewClient(ctx, endpoint)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := newRootCmd(defaultClient).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type rootOptions struct {
	cfg       config.Config
	newClient clientFactory
}

func (o *rootOptions) table(ctx context.Context) (*store.MetadataTable, error) {
	client, err := o.newClient(ctx, o.cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	return store.NewMetadataTable(client, o.cfg.TableName), nil
}

func newRootCmd(newClient clientFactory) *cobra.Command {
	opts := &rootOptions{cfg: config.Load(), newClient: newClient}

	cmd := &cobra.Command{
		Use:           "ingestctl",
		Short:         "Replay S3 notifications and inspect file metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfg.TableName, "table", opts.cfg.TableName, "DynamoDB table name")
	cmd.PersistentFlags().StringVar(&opts.cfg.Endpoint, "endpoint", opts.cfg.Endpoint, "DynamoDB endpoint override (e.g. http://localhost:8000)")
	cmd.PersistentFlags().StringVar(&opts.cfg.EventSource, "source", opts.cfg.EventSource, "accepted eventSource value")
	cmd.PersistentFlags().StringVar(&opts.cfg.LogLevel, "log-level", opts.cfg.LogLevel, "log level: debug, info, warn, error")

	cmd.AddCommand(newInvokeCmd(opts), newGetCmd(opts))
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
