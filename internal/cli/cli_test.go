package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thiru152003/s3-lamda/internal/model"
	"github.com/Thiru152003/s3-lamda/internal/store"
	"github.com/Thiru152003/s3-lamda/internal/store/storetest"
)

const sampleEvent = `{
  "Records": [
    {
      "eventSource": "aws:s3",
      "eventTime": "2026-03-01T09:15:00.000Z",
      "awsRegion": "us-east-2",
      "s3": {
        "bucket": {"name": "uploads"},
        "object": {"key": "incoming/orders.json", "size": 1234}
      }
    }
  ]
}`

func fakeFactory(fake *storetest.FakeDynamo) clientFactory {
	return func(context.Context, string) (store.API, error) { return fake, nil }
}

func run(t *testing.T, fake *storetest.FakeDynamo, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DYNAMODB_TABLE_NAME", "")
	t.Setenv("DYNAMODB_ENDPOINT", "")
	t.Setenv("EVENT_SOURCE", "")

	rootCmd := newRootCmd(fakeFactory(fake))
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInvoke_FromFileThenGet(t *testing.T) {
	fake := storetest.NewFakeDynamo()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleEvent), 0o600))

	out, err := run(t, fake, "", "--table", "meta", "invoke", "--event", path, "--request-id", "local-1")
	require.NoError(t, err)

	var resp model.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 1, resp.Body.ProcessedFiles)

	out, err = run(t, fake, "", "--table", "meta", "get", "incoming/orders.json")
	require.NoError(t, err)

	var rec model.FileMetadata
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "uploads", rec.BucketName)
	assert.Equal(t, int64(1234), rec.FileSizeBytes)
	assert.Equal(t, "json", rec.FileType)
	assert.Equal(t, "local-1", rec.RequestID)
	assert.Equal(t, "us-east-2", rec.Region)
}

func TestInvoke_StdinGeneratesRequestID(t *testing.T) {
	fake := storetest.NewFakeDynamo()

	_, err := run(t, fake, sampleEvent, "invoke")
	require.NoError(t, err)

	tbl := store.NewMetadataTable(fake, model.DefaultTableName)
	rec, err := tbl.Get(context.Background(), "incoming/orders.json")
	require.NoError(t, err)
	assert.Len(t, rec.RequestID, 36)
}

func TestInvoke_FailOnError(t *testing.T) {
	fake := storetest.NewFakeDynamo()
	fake.Fail["incoming/orders.json"] = errors.New("throttled")

	out, err := run(t, fake, sampleEvent, "invoke", "--fail-on-error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, out, "partial_failure")
}

func TestInvoke_MissingFile(t *testing.T) {
	_, err := run(t, storetest.NewFakeDynamo(), "", "invoke", "--event", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read event file")
}

func TestGet_NotFound(t *testing.T) {
	_, err := run(t, storetest.NewFakeDynamo(), "", "get", "missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGet_RequiresKey(t *testing.T) {
	_, err := run(t, storetest.NewFakeDynamo(), "", "get")
	require.Error(t, err)
}
