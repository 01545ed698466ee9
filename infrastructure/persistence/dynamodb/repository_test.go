package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"reflections/domain/core/entities"
	"reflections/domain/core/valueobjects"
	pkgerrors "reflections/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}

func (m *mockClient) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockClient) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.DeleteItemOutput)
	return out, args.Error(1)
}

func (m *mockClient) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.QueryOutput)
	return out, args.Error(1)
}

func (m *mockClient) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.ScanOutput)
	return out, args.Error(1)
}

var fixedTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestReflection(t *testing.T) *entities.Reflection {
	t.Helper()
	content, err := valueobjects.NewReflectionContent("Walked by the sea", 8, "wave")
	require.NoError(t, err)
	r, err := entities.NewReflection(valueobjects.NewReflectionID(), "alice", content, fixedTime)
	require.NoError(t, err)
	return r
}

func marshalItem(t *testing.T, v interface{}) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return av
}

func TestReflectionItem_RoundTrip(t *testing.T) {
	reflection := newTestReflection(t)

	item := toReflectionItem(reflection)

	assert.Equal(t, "REFLECTION#"+reflection.ID().String(), item.PK)
	assert.Equal(t, "METADATA", item.SK)
	assert.Equal(t, "USER#alice", item.GSI1PK)
	assert.Equal(t, "REFLECTION#2024-03-01T09:30:00Z", item.GSI1SK)
	assert.Equal(t, "REFLECTION", item.EntityType)

	restored, err := item.toEntity()
	require.NoError(t, err)
	assert.True(t, reflection.ID().Equals(restored.ID()))
	assert.Equal(t, "alice", restored.Author())
	assert.True(t, reflection.Content().Equals(restored.Content()))
	assert.True(t, fixedTime.Equal(restored.ModifyDate()))
}

func TestReflectionItem_ToEntityRejectsBadID(t *testing.T) {
	item := toReflectionItem(newTestReflection(t))
	item.ReflectionID = "not-a-uuid"

	_, err := item.toEntity()

	assert.Error(t, err)
}

func TestReflectionRepository_SavePutsItem(t *testing.T) {
	client := new(mockClient)
	repo := NewReflectionRepository(client, "reflections", nil, zap.NewNop())
	reflection := newTestReflection(t)

	client.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		pk, ok := in.Item["PK"].(*types.AttributeValueMemberS)
		return *in.TableName == "reflections" && ok && pk.Value == "REFLECTION#"+reflection.ID().String()
	})).Return(&dynamodb.PutItemOutput{}, nil)

	err := repo.Save(context.Background(), reflection)

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestReflectionRepository_SaveWrapsSDKError(t *testing.T) {
	client := new(mockClient)
	repo := NewReflectionRepository(client, "reflections", nil, zap.NewNop())
	client.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	err := repo.Save(context.Background(), newTestReflection(t))

	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeDatabase))
}

func TestReflectionRepository_GetByID(t *testing.T) {
	client := new(mockClient)
	repo := NewReflectionRepository(client, "reflections", nil, zap.NewNop())
	reflection := newTestReflection(t)

	client.On("GetItem", mock.Anything, mock.Anything).
		Return(&dynamodb.GetItemOutput{Item: marshalItem(t, toReflectionItem(reflection))}, nil)

	got, err := repo.GetByID(context.Background(), reflection.ID())

	require.NoError(t, err)
	assert.Equal(t, "Walked by the sea", got.Content().Memory())
	assert.Equal(t, 8, got.Content().Happiness().Int())
}

func TestReflectionRepository_GetByIDMissing(t *testing.T) {
	client := new(mockClient)
	repo := NewReflectionRepository(client, "reflections", nil, zap.NewNop())
	client.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	_, err := repo.GetByID(context.Background(), valueobjects.NewReflectionID())

	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestReflectionRepository_ListFollowsPages(t *testing.T) {
	client := new(mockClient)
	repo := NewReflectionRepository(client, "reflections", nil, zap.NewNop())
	first := newTestReflection(t)
	second := newTestReflection(t)
	lastKey := map[string]types.AttributeValue{"PK": &types.AttributeValueMemberS{Value: "x"}}

	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{marshalItem(t, toReflectionItem(first))},
		LastEvaluatedKey: lastKey,
	}, nil).Once()
	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey != nil
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{marshalItem(t, toReflectionItem(second))},
	}, nil).Once()

	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
	client.AssertExpectations(t)
}

func TestReflectionRepository_DeleteMissingIsNotFound(t *testing.T) {
	client := new(mockClient)
	repo := NewReflectionRepository(client, "reflections", nil, zap.NewNop())
	client.On("DeleteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		return in.ConditionExpression != nil
	})).Return(nil, &types.ConditionalCheckFailedException{Message: ptr("failed")})

	err := repo.Delete(context.Background(), valueobjects.NewReflectionID())

	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCommentRepository_GetByReflectionIDSortsOldestFirst(t *testing.T) {
	client := new(mockClient)
	repo := NewCommentRepository(client, "reflections", nil, zap.NewNop())
	reflectionID := valueobjects.NewReflectionID()

	late, err := entities.ReconstructComment("c2", reflectionID, "bob", "second", fixedTime.Add(time.Hour))
	require.NoError(t, err)
	early, err := entities.ReconstructComment("c1", reflectionID, "carol", "first", fixedTime)
	require.NoError(t, err)

	client.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			marshalItem(t, toCommentItem(late)),
			marshalItem(t, toCommentItem(early)),
		},
	}, nil)

	got, err := repo.GetByReflectionID(context.Background(), reflectionID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID())
	assert.Equal(t, "c2", got[1].ID())
}

func ptr(s string) *string { return &s }
