package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string][]byte
	putErr  map[string]error
	puts    []string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, putErr: map[string]error{}}
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	if err := f.putErr[aws.ToString(in.Key)]; err != nil {
		return nil, err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[key] = data
	f.puts = append(f.puts, aws.ToString(in.Key))
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_GetMissing_ReturnsNilNil(t *testing.T) {
	s := NewS3Store(newFakeObjects(), "bucket", "")

	v, err := s.Get(context.Background(), FoodEntries, "alice")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestS3Store_PutGet_UsesPrefixedKeys(t *testing.T) {
	api := newFakeObjects()
	s := NewS3Store(api, "bucket", "tracker")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, HealthIssues, "alice", []byte(`[]`)))
	assert.Equal(t, []string{"tracker/health-issues/alice.json"}, api.puts)

	v, err := s.Get(ctx, HealthIssues, "alice")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))
}

func TestS3Store_GetError_IsWrapped(t *testing.T) {
	api := &erroringObjects{err: errors.New("access denied")}
	s := NewS3Store(api, "bucket", "")

	_, err := s.Get(context.Background(), FoodEntries, "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.err)
}

func TestS3Store_PutBatch_StopsAtFirstFailure(t *testing.T) {
	api := newFakeObjects()
	boom := errors.New("slow down")
	api.putErr["nutritrack/health-issues/u.json"] = boom
	s := NewS3Store(api, "bucket", "")

	err := s.PutBatch(context.Background(), "u",
		Blob{Collection: HealthIssues, Data: []byte(`[]`)},
		Blob{Collection: HealthRecommendations, Data: []byte(`[]`)},
	)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, api.puts)
}

type erroringObjects struct{ err error }

func (e *erroringObjects) GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return nil, e.err
}

func (e *erroringObjects) PutObject(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return nil, e.err
}
