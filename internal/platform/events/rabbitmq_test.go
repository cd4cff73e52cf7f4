package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backend/internal/platform/metrics"
)

type publishCall struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

// fakeChannel は送信内容を記録する channel の実装です。
type fakeChannel struct {
	calls  []publishCall
	err    error
	closed bool
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, publishCall{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: DefaultExchange, now: func() time.Time { return fixed }}

	before := testutil.ToFloat64(metrics.EventsPublished.WithLabelValues("order.created", "ok"))
	err := p.Publish(context.Background(), "order.created", map[string]any{"orderId": "abc", "total": 25.0})
	require.NoError(t, err)

	require.Len(t, ch.calls, 1)
	call := ch.calls[0]
	assert.Equal(t, DefaultExchange, call.exchange)
	assert.Equal(t, "order.created", call.key)
	assert.Equal(t, "application/json", call.msg.ContentType)
	assert.Equal(t, amqp.Persistent, call.msg.DeliveryMode)

	var env struct {
		Pattern    string         `json:"pattern"`
		Data       map[string]any `json:"data"`
		ID         string         `json:"id"`
		OccurredAt time.Time      `json:"occurredAt"`
	}
	require.NoError(t, json.Unmarshal(call.msg.Body, &env))
	assert.Equal(t, "order.created", env.Pattern)
	assert.Equal(t, "abc", env.Data["orderId"])
	assert.Equal(t, call.msg.MessageId, env.ID)
	assert.True(t, fixed.Equal(env.OccurredAt))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EventsPublished.WithLabelValues("order.created", "ok")))
}

func TestPublisher_PublishErrors(t *testing.T) {
	t.Run("channel failure", func(t *testing.T) {
		p := &Publisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: DefaultExchange, now: time.Now}

		before := testutil.ToFloat64(metrics.EventsPublished.WithLabelValues("order.failed_test", "error"))
		err := p.Publish(context.Background(), "order.failed_test", struct{}{})

		assert.ErrorContains(t, err, "channel closed")
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.EventsPublished.WithLabelValues("order.failed_test", "error")))
	})

	t.Run("unmarshalable payload", func(t *testing.T) {
		ch := &fakeChannel{}
		p := &Publisher{ch: ch, exchange: DefaultExchange, now: time.Now}

		err := p.Publish(context.Background(), "order.created", map[string]any{"bad": make(chan int)})

		assert.Error(t, err)
		assert.Empty(t, ch.calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ch := &fakeChannel{}
		p := &Publisher{ch: ch, exchange: DefaultExchange, now: time.Now}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, p.Publish(ctx, "order.created", nil), context.Canceled)
		assert.Empty(t, ch.calls)
	})
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch}
	p.Close()
	assert.True(t, ch.closed)
}
