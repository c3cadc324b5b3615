package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireInRegistrationOrder(t *testing.T) {
	b := New()
	var got []string
	b.Listen("order.created", func(_ context.Context, p any) { got = append(got, "a:"+p.(string)) })
	b.Listen("order.created", func(_ context.Context, p any) { got = append(got, "b:"+p.(string)) })
	b.Listen("order.status_changed", func(_ context.Context, p any) { got = append(got, "other") })

	b.Fire(context.Background(), "order.created", "1")
	assert.Equal(t, []string{"a:1", "b:1"}, got)
}

func TestPanickingListenerIsContained(t *testing.T) {
	b := New()
	called := false
	b.Listen("x", func(context.Context, any) { panic("listener bug") })
	b.Listen("x", func(context.Context, any) { called = true })

	assert.NotPanics(t, func() { b.Fire(context.Background(), "x", nil) })
	assert.True(t, called)
}

func TestNilBusAndFlush(t *testing.T) {
	var nilBus *Bus
	assert.NotPanics(t, func() { nilBus.Fire(context.Background(), "x", nil) })

	b := New()
	calls := 0
	b.Listen("x", func(context.Context, any) { calls++ })
	b.Flush()
	b.Fire(context.Background(), "x", nil)
	assert.Zero(t, calls)
}
