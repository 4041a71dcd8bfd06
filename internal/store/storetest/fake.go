// Package storetest provides an in-memory DynamoDB stand-in for tests.
package storetest

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Thiru152003/s3-lamda/internal/model"
)

// FakeDynamo implements store.API with last-write-wins semantics per
// (table, file_id). It is safe for concurrent use.
type FakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	puts  int

	// Fail maps a file_id to the error PutItem returns for it.
	Fail map[string]error
}

// NewFakeDynamo returns an empty FakeDynamo.
func NewFakeDynamo() *FakeDynamo {
	return &FakeDynamo{
		items: make(map[string]map[string]types.AttributeValue),
		Fail:  make(map[string]error),
	}
}

func itemKey(table, id string) string { return table + "\x00" + id }

func keyOf(m map[string]types.AttributeValue) (string, error) {
	s, ok := m[model.KeyAttribute].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("missing string key attribute %q", model.KeyAttribute)
	}
	return s.Value, nil
}

// PutItem stores a copy of in.Item, replacing any previous item.
func (f *FakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	id, err := keyOf(in.Item)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Fail[id]; err != nil {
		return nil, err
	}
	f.items[itemKey(aws.ToString(in.TableName), id)] = maps.Clone(in.Item)
	f.puts++
	return &dynamodb.PutItemOutput{}, nil
}

// GetItem returns the stored item, or an output with a nil Item.
func (f *FakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id, err := keyOf(in.Key)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemKey(aws.ToString(in.TableName), id)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: maps.Clone(item)}, nil
}

// Puts returns the number of successful PutItem calls.
func (f *FakeDynamo) Puts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

// Len returns the number of stored items across all tables.
func (f *FakeDynamo) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
