package eventbridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"reflections/domain/core/valueobjects"
	"reflections/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPutEvents struct {
	mock.Mock
}

func (m *mockPutEvents) PutEvents(ctx context.Context, in *eventbridge.PutEventsInput, _ ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*eventbridge.PutEventsOutput)
	return out, args.Error(1)
}

func deletedEvents(n int) []events.DomainEvent {
	out := make([]events.DomainEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, events.NewReflectionDeleted(valueobjects.NewReflectionID(), "alice", time.Now()))
	}
	return out
}

func TestPublisher_PublishBatchChunksByTen(t *testing.T) {
	client := new(mockPutEvents)
	publisher := NewPublisher(client, "journal-bus", zap.NewNop())

	client.On("PutEvents", mock.Anything, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
		return len(in.Entries) == 10
	})).Return(&eventbridge.PutEventsOutput{}, nil).Once()
	client.On("PutEvents", mock.Anything, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
		return len(in.Entries) == 2 &&
			aws.ToString(in.Entries[0].EventBusName) == "journal-bus" &&
			aws.ToString(in.Entries[0].Source) == Source &&
			aws.ToString(in.Entries[0].DetailType) == events.TypeReflectionDeleted
	})).Return(&eventbridge.PutEventsOutput{}, nil).Once()

	err := publisher.PublishBatch(context.Background(), deletedEvents(12))

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestPublisher_ReportsFailedEntries(t *testing.T) {
	client := new(mockPutEvents)
	publisher := NewPublisher(client, "journal-bus", zap.NewNop())

	client.On("PutEvents", mock.Anything, mock.Anything).Return(&eventbridge.PutEventsOutput{
		FailedEntryCount: 1,
		Entries:          []types.PutEventsResultEntry{{ErrorCode: aws.String("InternalFailure")}},
	}, nil)

	err := publisher.Publish(context.Background(), deletedEvents(1)[0])

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 events failed")
}

func TestPublisher_WrapsClientError(t *testing.T) {
	client := new(mockPutEvents)
	publisher := NewPublisher(client, "journal-bus", zap.NewNop())
	client.On("PutEvents", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	err := publisher.PublishBatch(context.Background(), deletedEvents(1))

	assert.ErrorContains(t, err, "boom")
}

func TestPublisher_EmptyBatchIsNoop(t *testing.T) {
	client := new(mockPutEvents)
	publisher := NewPublisher(client, "journal-bus", zap.NewNop())

	require.NoError(t, publisher.PublishBatch(context.Background(), nil))
	client.AssertNotCalled(t, "PutEvents", mock.Anything, mock.Anything)
}

func TestLogPublisher(t *testing.T) {
	publisher := NewLogPublisher(zap.NewNop())

	assert.NoError(t, publisher.PublishBatch(context.Background(), deletedEvents(3)))
}
