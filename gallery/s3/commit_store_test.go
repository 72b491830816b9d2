package s3

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccvi/gallery"
)

func newTestCommitStore(ddb DDBClient) *CommitStore {
	s3Store := NewStore(new(MockS3Client), "bucket", "galleries")
	return NewCommitStore(s3Store, ddb, "ccvi-gallery-commits", "s3://bucket/galleries")
}

func emptyQueryResult() *dynamodb.QueryOutput {
	return &dynamodb.QueryOutput{Items: nil}
}

func queryResultWith(revision, docName string) *dynamodb.QueryOutput {
	return &dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			{
				"gallery_uri":   &types.AttributeValueMemberS{Value: "s3://bucket/galleries"},
				"revision":      &types.AttributeValueMemberN{Value: revision},
				"document_name": &types.AttributeValueMemberS{Value: docName},
			},
		},
	}
}

func TestCommitStore_OpenLatest_Empty(t *testing.T) {
	ddb := new(MockDDBClient)
	ddb.On("Query", mock.Anything, mock.Anything).Return(emptyQueryResult(), nil).Once()

	store := newTestCommitStore(ddb)

	_, err := store.Open(context.Background(), LatestPointer)
	assert.ErrorIs(t, err, gallery.ErrNotFound)
}

func TestCommitStore_CommitThenReadLatest(t *testing.T) {
	ddb := new(MockDDBClient)
	store := newTestCommitStore(ddb)
	ctx := context.Background()

	// First commit: log is empty, revision 1 is claimed.
	ddb.On("Query", mock.Anything, mock.Anything).Return(emptyQueryResult(), nil).Once()
	ddb.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
		rev := input.Item["revision"].(*types.AttributeValueMemberN)
		name := input.Item["document_name"].(*types.AttributeValueMemberS)
		return rev.Value == "1" && name.Value == "sunset-v1.ccvi" &&
			*input.ConditionExpression == "attribute_not_exists(revision)"
	})).Return(&dynamodb.PutItemOutput{}, nil).Once()

	require.NoError(t, store.Put(ctx, LatestPointer, []byte("sunset-v1.ccvi")))

	// Reading the pointer returns the committed document name.
	ddb.On("Query", mock.Anything, mock.Anything).Return(queryResultWith("1", "sunset-v1.ccvi"), nil).Once()

	blob, err := store.Open(ctx, LatestPointer)
	require.NoError(t, err)
	defer blob.Close()

	buf := make([]byte, blob.Size())
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "sunset-v1.ccvi", string(buf))
}

func TestCommitStore_ConcurrentCommit(t *testing.T) {
	ddb := new(MockDDBClient)
	store := newTestCommitStore(ddb)

	// Another writer claimed revision 2 between our read and our put.
	ddb.On("Query", mock.Anything, mock.Anything).Return(queryResultWith("1", "sunset-v1.ccvi"), nil).Once()
	ddb.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{
		Message: aws.String("The conditional request failed"),
	}).Once()

	err := store.Put(context.Background(), LatestPointer, []byte("sunset-v2.ccvi"))
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestCommitStore_CreateLatestRejected(t *testing.T) {
	store := newTestCommitStore(new(MockDDBClient))

	_, err := store.Create(context.Background(), LatestPointer)
	assert.Error(t, err)
}
