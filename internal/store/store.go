// Package store persists file metadata rows in DynamoDB.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/Thiru152003/s3-lamda/internal/model"
)

// ErrNotFound is returned by Get when no row exists for the key.
var ErrNotFound = errors.New("metadata not found")

// API is the subset of the DynamoDB client used by MetadataTable.
// *dynamodb.Client satisfies it.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Error describes a failed table operation. Code carries the AWS error code
// (for example ProvisionedThroughputExceededException) when one is available.
type Error struct {
	Op   string
	Key  string
	Code string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %q: %s: %s", e.Op, e.Key, e.Code, e.Msg)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op, key string, err error) error {
	se := &Error{Op: op, Key: key, Err: err}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		se.Code = apiErr.ErrorCode()
		se.Msg = apiErr.ErrorMessage()
	}
	return se
}

// NewClient builds a DynamoDB client from the default AWS credential chain.
// A non-empty endpoint overrides the service endpoint.
func NewClient(ctx context.Context, endpoint string) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// MetadataTable reads and upserts FileMetadata items keyed by file_id.
type MetadataTable struct {
	client API
	table  string
}

// NewMetadataTable creates a MetadataTable for the named table.
func NewMetadataTable(client API, table string) *MetadataTable {
	return &MetadataTable{client: client, table: table}
}

// Table returns the table name.
func (t *MetadataTable) Table() string { return t.table }

// Put writes rec, replacing any existing item with the same FileID.
func (t *MetadataTable) Put(ctx context.Context, rec model.FileMetadata) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal metadata %q: %w", rec.FileID, err)
	}

	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.table),
		Item:      item,
	})
	if err != nil {
		return wrap("put item", rec.FileID, err)
	}
	return nil
}

// Get returns the item stored under fileID, or ErrNotFound.
func (t *MetadataTable) Get(ctx context.Context, fileID string) (model.FileMetadata, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.table),
		Key: map[string]types.AttributeValue{
			model.KeyAttribute: &types.AttributeValueMemberS{Value: fileID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return model.FileMetadata{}, wrap("get item", fileID, err)
	}
	if len(out.Item) == 0 {
		return model.FileMetadata{}, fmt.Errorf("%q: %w", fileID, ErrNotFound)
	}

	var rec model.FileMetadata
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return model.FileMetadata{}, fmt.Errorf("unmarshal metadata %q: %w", fileID, err)
	}
	return rec, nil
}
