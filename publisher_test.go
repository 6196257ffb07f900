package databus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/databus"
	"github.com/dmitrymomot/databus/pkg/topic"
)

func TestPublisher_PublishBeforeSubscribe(t *testing.T) {
	t.Parallel()

	reg := databus.NewSingle[string, int]()
	ctx := context.Background()

	pub, err := databus.NewPublisher("a", reg)
	require.NoError(t, err)
	require.NoError(t, pub.Publish(ctx, 5))

	var stored []int
	_, err = databus.NewSubscriber("a", func(_ context.Context, v int) error {
		stored = append(stored, v)
		return nil
	}, reg)
	require.NoError(t, err)

	require.NoError(t, pub.Publish(ctx, 7))
	assert.Equal(t, []int{7}, stored)
}

func TestPublisher_NoHandlerIsNoop(t *testing.T) {
	t.Parallel()

	for _, d := range []databus.Discipline{databus.Single, databus.Multi} {
		t.Run(d.String(), func(t *testing.T) {
			t.Parallel()

			reg := databus.New[string, int](d)
			pub := databus.MustPublisher("silent", reg)

			assert.NotPanics(t, func() {
				assert.NoError(t, pub.Publish(context.Background(), 1))
			})
			assert.False(t, pub.Slot().Bound())
		})
	}
}

func TestPublisher_MultiInvokesInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	reg := databus.NewMulti[string, string]()

	var order []int
	for i := range 5 {
		databus.MustSubscribe("ordered", func(context.Context, string) error {
			order = append(order, i)
			return nil
		}, reg)
	}

	pub := databus.MustPublisher("ordered", reg)
	require.NoError(t, pub.Publish(context.Background(), "go"))
	require.NoError(t, pub.Publish(context.Background(), "again"))

	assert.Equal(t, []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4}, order)
}

func TestPublisher_ConstructionOrderIndependent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		publisherFirst   bool
		discipline       databus.Discipline
		expectedReceived []int
	}{
		{name: "single publisher first", publisherFirst: true, discipline: databus.Single, expectedReceived: []int{31}},
		{name: "single subscriber first", publisherFirst: false, discipline: databus.Single, expectedReceived: []int{31}},
		{name: "multi publisher first", publisherFirst: true, discipline: databus.Multi, expectedReceived: []int{31}},
		{name: "multi subscriber first", publisherFirst: false, discipline: databus.Multi, expectedReceived: []int{31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := databus.New[string, int](tt.discipline)

			var received []int
			handler := func(_ context.Context, v int) error {
				received = append(received, v)
				return nil
			}

			var pub *databus.Publisher[string, int]
			if tt.publisherFirst {
				pub = databus.MustPublisher("test", reg)
				databus.MustSubscribe("test", handler, reg)
			} else {
				databus.MustSubscribe("test", handler, reg)
				pub = databus.MustPublisher("test", reg)
			}

			require.NoError(t, pub.Publish(context.Background(), 31))
			assert.Equal(t, tt.expectedReceived, received)
			assert.Equal(t, 1, reg.Len())
		})
	}
}

func TestPublisher_FailFast(t *testing.T) {
	t.Parallel()

	reg := databus.NewMulti[string, int]()
	errStop := errors.New("stop here")

	var calls []string
	databus.MustSubscribe("k", func(context.Context, int) error {
		calls = append(calls, "first")
		return nil
	}, reg)
	databus.MustSubscribe("k", func(context.Context, int) error {
		calls = append(calls, "second")
		return errStop
	}, reg)
	databus.MustSubscribe("k", func(context.Context, int) error {
		calls = append(calls, "third")
		return nil
	}, reg)

	err := databus.MustPublisher("k", reg).Publish(context.Background(), 1)
	assert.Equal(t, errStop, err, "handler error must be returned unchanged")
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublisher_SingleReturnsHandlerError(t *testing.T) {
	t.Parallel()

	reg := databus.NewSingle[string, int]()
	errHandler := errors.New("handler failed")
	databus.MustSubscribe("k", func(context.Context, int) error { return errHandler }, reg)

	err := databus.MustPublisher("k", reg).Publish(context.Background(), 1)
	assert.Equal(t, errHandler, err)
}

func TestPublisher_PanicPropagates(t *testing.T) {
	t.Parallel()

	reg := databus.NewMulti[string, int]()

	reached := false
	databus.MustSubscribe("k", func(context.Context, int) error { panic("boom") }, reg)
	databus.MustSubscribe("k", func(context.Context, int) error {
		reached = true
		return nil
	}, reg)

	pub := databus.MustPublisher("k", reg)
	assert.PanicsWithValue(t, "boom", func() {
		_ = pub.Publish(context.Background(), 1)
	})
	assert.False(t, reached)
}

func TestPublisher_ContextCarriesKey(t *testing.T) {
	t.Parallel()

	reg := databus.NewSingle[string, int]()

	var (
		gotKey   string
		gotOK    bool
		wrongOK  bool
		gotValue any
	)
	type reqID struct{}
	databus.MustSubscribe("sensor.1", func(ctx context.Context, _ int) error {
		gotKey, gotOK = databus.KeyFromContext[string](ctx)
		_, wrongOK = databus.KeyFromContext[int](ctx)
		gotValue = ctx.Value(reqID{})
		return nil
	}, reg)

	ctx := context.WithValue(context.Background(), reqID{}, "r-1")
	require.NoError(t, databus.MustPublisher("sensor.1", reg).Publish(ctx, 1))

	assert.True(t, gotOK)
	assert.Equal(t, "sensor.1", gotKey)
	assert.False(t, wrongOK)
	assert.Equal(t, "r-1", gotValue, "caller context values must be preserved")

	_, ok := databus.KeyFromContext[string](context.Background())
	assert.False(t, ok)
}

func TestPublisher_SubscribeDuringPublish(t *testing.T) {
	t.Parallel()

	reg := databus.NewMulti[string, int]()
	pub := databus.MustPublisher("grow", reg)

	var calls []string
	databus.MustSubscribe("grow", func(_ context.Context, v int) error {
		calls = append(calls, "outer")
		if v == 1 {
			databus.MustSubscribe("grow", func(context.Context, int) error {
				calls = append(calls, "inner")
				return nil
			}, reg)
			reg.Resolve("side-effect")
		}
		return nil
	}, reg)

	require.NoError(t, pub.Publish(context.Background(), 1))
	assert.Equal(t, []string{"outer"}, calls, "a subscription made during publish is not seen by it")

	require.NoError(t, pub.Publish(context.Background(), 2))
	assert.Equal(t, []string{"outer", "outer", "inner"}, calls)
	assert.Equal(t, []string{"grow", "side-effect"}, reg.Keys())
}

func TestPublisher_Accessors(t *testing.T) {
	t.Parallel()

	reg := databus.NewSingle[topic.Topic, int](databus.WithNormalizer(topic.Normalize))
	pub, err := databus.NewPublisher(topic.Topic("Metrics.CPU"), reg)
	require.NoError(t, err)

	assert.Equal(t, topic.Topic("metrics.cpu"), pub.Key())
	assert.Same(t, reg, pub.Registry())
	assert.Same(t, reg.Resolve("metrics.cpu"), pub.Slot())
}

func TestMustPublisher_PanicsOnBadKey(t *testing.T) {
	t.Parallel()

	reg := databus.NewSingle[topic.Topic, int]()
	assert.Panics(t, func() {
		databus.MustPublisher(topic.Topic("not valid"), reg)
	})
}
