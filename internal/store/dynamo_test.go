package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/isdelr/login-api/internal/config"
	"github.com/isdelr/login-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo emulates a single table keyed by "email".
type fakeDynamo struct {
	mu     sync.Mutex
	items  map[string]map[string]types.AttributeValue
	getErr error
	putErr error
	tables []string
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue)}
}

func keyOf(item map[string]types.AttributeValue) string {
	if s, ok := item["email"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables = append(f.tables, aws.ToString(in.TableName))
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables = append(f.tables, aws.ToString(in.TableName))
	if f.putErr != nil {
		return nil, f.putErr
	}
	key := keyOf(in.Item)
	if _, exists := f.items[key]; exists && aws.ToString(in.ConditionExpression) == "attribute_not_exists(email)" {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	f.items[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoStore(t *testing.T) {
	fake := newFakeDynamo()
	runStoreContract(t, NewDynamoStore(fake, "user-login"))

	for _, table := range fake.tables {
		assert.Equal(t, "user-login", table)
	}
}

func TestDynamoStore_ItemLayout(t *testing.T) {
	fake := newFakeDynamo()
	s := NewDynamoStore(fake, "user-login")

	require.NoError(t, s.Put(context.Background(), models.User{Name: "alice", Email: "alice@x.com", PasswordHash: "hash"}))

	item := fake.items["alice@x.com"]
	require.NotNil(t, item)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "hash"}, item["password"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "alice"}, item["name"])
}

func TestDynamoStore_ClientErrors(t *testing.T) {
	boom := errors.New("throttled")
	fake := newFakeDynamo()
	fake.getErr = boom
	fake.putErr = boom
	s := NewDynamoStore(fake, "user-login")

	_, err := s.Get(context.Background(), "alice@x.com")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)

	err = s.Put(context.Background(), models.User{Email: "alice@x.com"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrAlreadyExists)
}

func TestNewDynamoClient_AppliesConfig(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newDynamoFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newDynamoFromConfig = origNew
	})

	var lo awsconfig.LoadOptions
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				return aws.Config{}, err
			}
		}
		return aws.Config{}, nil
	}

	var baseEndpoint string
	newDynamoFromConfig = func(cfg aws.Config, optFns ...func(*dynamodb.Options)) *dynamodb.Client {
		var opts dynamodb.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		baseEndpoint = aws.ToString(opts.BaseEndpoint)
		return &dynamodb.Client{}
	}

	cfg := &config.Config{
		Region:           "sa-east-1",
		AccessKey:        "AKID",
		SecretKey:        "SECRET",
		DynamoDBEndpoint: "http://localhost:8000",
	}
	client, err := NewDynamoClient(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, client)

	assert.Equal(t, "sa-east-1", lo.Region)
	require.NotNil(t, lo.Credentials)
	creds, err := lo.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKID", creds.AccessKeyID)
	assert.Equal(t, "http://localhost:8000", baseEndpoint)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = NewDynamoClient(context.Background(), cfg)
	assert.EqualError(t, err, "load-fail")
}
