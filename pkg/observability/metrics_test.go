package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockMetricsAPI struct {
	mock.Mock
}

func (m *mockMetricsAPI) PutMetricData(ctx context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*cloudwatch.PutMetricDataOutput)
	return out, args.Error(1)
}

func TestMetrics_RecordDispatch(t *testing.T) {
	client := new(mockMetricsAPI)
	metrics := NewMetrics("Reflections/test", client, zap.NewNop())

	client.On("PutMetricData", mock.Anything, mock.MatchedBy(func(in *cloudwatch.PutMetricDataInput) bool {
		if aws.ToString(in.Namespace) != "Reflections/test" || len(in.MetricData) != 2 {
			return false
		}
		datum := in.MetricData[0]
		return aws.ToString(datum.MetricName) == "CommandExecution" &&
			aws.ToString(datum.Dimensions[0].Name) == "CommandName" &&
			aws.ToString(datum.Dimensions[0].Value) == "DeleteReflectionCommand" &&
			aws.ToString(datum.Dimensions[1].Value) == "failure"
	})).Return(&cloudwatch.PutMetricDataOutput{}, nil)

	metrics.RecordDispatch(context.Background(), "command", "DeleteReflectionCommand", 15*time.Millisecond, errors.New("boom"))

	client.AssertExpectations(t)
}

func TestMetrics_NilClientIsNoop(t *testing.T) {
	var metrics *Metrics

	assert.NotPanics(t, func() {
		metrics.RecordDispatch(context.Background(), "query", "ListReflectionsQuery", time.Millisecond, nil)
	})
	assert.NotPanics(t, func() {
		NewMetrics("ns", nil, zap.NewNop()).RecordDispatch(context.Background(), "query", "x", 0, nil)
	})
}

func TestTracer_DisabledRunsFunction(t *testing.T) {
	tracer := NewTracer("reflections", false)
	called := false

	err := tracer.TraceFunction(context.Background(), "op", func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
	assert.False(t, tracer.Enabled())
}

func TestTracer_EnabledWithoutSegmentRunsFunction(t *testing.T) {
	tracer := NewTracer("reflections", true)
	want := errors.New("failed")

	err := tracer.TraceFunction(context.Background(), "op", func(ctx context.Context) error {
		return want
	})

	assert.ErrorIs(t, err, want)
}
