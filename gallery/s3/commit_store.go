package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/ccvi/gallery"
)

// LatestPointer is the reserved blob name holding the name of the most
// recently published document revision.
const LatestPointer = "LATEST"

// ErrConcurrentModification is returned when another writer published a
// revision between this writer's read and commit.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// DDBClient is the subset of the DynamoDB API the commit store uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// CommitStore is a gallery.Store backed by S3 with a DynamoDB revision
// log for the LatestPointer entry. Document blobs go straight to S3;
// writes of LatestPointer become conditional DynamoDB puts, which gives
// concurrent publishers the compare-and-swap semantics S3 lacks.
//
// Table schema:
//   - Partition key: gallery_uri (string), the S3 bucket/prefix
//   - Sort key: revision (number), monotonically increasing
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name ccvi-gallery-commits \
//	  --attribute-definitions AttributeName=gallery_uri,AttributeType=S AttributeName=revision,AttributeType=N \
//	  --key-schema AttributeName=gallery_uri,KeyType=HASH AttributeName=revision,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	s3Store   *Store
	ddbClient DDBClient
	tableName string
	// galleryURI, in "s3://bucket/prefix" form, is the partition key.
	galleryURI string
}

// NewCommitStore creates a CommitStore over an existing S3 store.
func NewCommitStore(s3Store *Store, ddbClient DDBClient, tableName, galleryURI string) *CommitStore {
	return &CommitStore{
		s3Store:    s3Store,
		ddbClient:  ddbClient,
		tableName:  tableName,
		galleryURI: galleryURI,
	}
}

// Open opens a blob. Opening LatestPointer reads the newest revision's
// document name from DynamoDB instead of S3.
func (s *CommitStore) Open(ctx context.Context, name string) (gallery.Blob, error) {
	if name == LatestPointer {
		revision, docName, err := s.latestRevision(ctx)
		if err != nil {
			return nil, err
		}
		if revision == 0 {
			return nil, gallery.ErrNotFound
		}
		return &pointerBlob{content: []byte(docName)}, nil
	}
	return s.s3Store.Open(ctx, name)
}

// Create passes through to S3. LatestPointer cannot be streamed; commit
// it with Put.
func (s *CommitStore) Create(ctx context.Context, name string) (gallery.WritableBlob, error) {
	if name == LatestPointer {
		return nil, fmt.Errorf("%s must be written with Put", LatestPointer)
	}
	return s.s3Store.Create(ctx, name)
}

// Put writes a blob. Writing LatestPointer commits data as the name of
// the newest revision via a conditional DynamoDB put.
func (s *CommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name == LatestPointer {
		return s.commitRevision(ctx, string(data))
	}
	return s.s3Store.Put(ctx, name, data)
}

// Delete removes a blob from S3. Revision history is never deleted.
func (s *CommitStore) Delete(ctx context.Context, name string) error {
	return s.s3Store.Delete(ctx, name)
}

// List lists S3 blobs with the prefix.
func (s *CommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.s3Store.List(ctx, prefix)
}

// latestRevision returns the newest committed revision and its document
// name, or revision 0 when nothing was committed yet.
func (s *CommitStore) latestRevision(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("gallery_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.galleryURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query revision log: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	revAttr, ok := item["revision"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid revision attribute in revision log")
	}
	nameAttr, ok := item["document_name"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid document_name attribute in revision log")
	}

	var revision uint64
	if _, err := fmt.Sscanf(revAttr.Value, "%d", &revision); err != nil {
		return 0, "", fmt.Errorf("parse revision: %w", err)
	}
	return revision, nameAttr.Value, nil
}

// commitRevision publishes docName as the next revision. Fails with
// ErrConcurrentModification if another writer claimed that revision
// first.
func (s *CommitStore) commitRevision(ctx context.Context, docName string) error {
	current, _, err := s.latestRevision(ctx)
	if err != nil {
		return err
	}
	next := current + 1

	_, err = s.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"gallery_uri":   &types.AttributeValueMemberS{Value: s.galleryURI},
			"revision":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", next)},
			"document_name": &types.AttributeValueMemberS{Value: docName},
		},
		ConditionExpression: aws.String("attribute_not_exists(revision)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("commit revision: %w", err)
	}
	return nil
}

// pointerBlob serves the LatestPointer content from memory.
type pointerBlob struct {
	content []byte
}

func (b *pointerBlob) Close() error {
	return nil
}

func (b *pointerBlob) Size() int64 {
	return int64(len(b.content))
}

func (b *pointerBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off >= int64(len(b.content)) {
		return 0, io.EOF
	}
	n := copy(p, b.content[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *pointerBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	if off >= int64(len(b.content)) {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	end := off + length
	if end > int64(len(b.content)) {
		end = int64(len(b.content))
	}
	return io.NopCloser(bytes.NewReader(b.content[off:end])), nil
}
