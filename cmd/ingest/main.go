// Package main is the Lambda entry point for S3 metadata ingestion.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/Thiru152003/s3-lamda/internal/config"
	"github.com/Thiru152003/s3-lamda/internal/handler"
	"github.com/Thiru152003/s3-lamda/internal/model"
	"github.com/Thiru152003/s3-lamda/internal/store"
)

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// The DynamoDB client is built on the first invocation and reused for the
	// lifetime of the execution environment.
	initHandler := sync.OnceValues(func() (*handler.Handler, error) {
		client, err := store.NewClient(context.Background(), cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		logger.Info("dynamodb client ready", "table", cfg.TableName)
		return handler.New(store.NewMetadataTable(client, cfg.TableName), cfg, logger), nil
	})

	lambda.Start(func(ctx context.Context, payload json.RawMessage) (model.Response, error) {
		h, err := initHandler()
		if err != nil {
			logger.ErrorContext(ctx, "initialise handler", "error", err)
			return model.Response{}, err
		}
		return h.Handle(ctx, payload)
	})
}
