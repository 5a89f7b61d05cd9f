package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcher_DeliversInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var got []string
	d.Subscribe(EventUserCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.EntityID)
		return nil
	})
	d.Subscribe(EventUserCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.EntityID)
		return nil
	})
	d.Subscribe(EventUserDeleted, func(_ context.Context, e Event) error {
		got = append(got, "deleted")
		return nil
	})

	d.Publish(context.Background(), New(EventUserCreated, "USER1", Actor{}, nil))
	assert.Equal(t, []string{"first:USER1", "second:USER1"}, got)
}

func TestDispatcher_HandlerErrorIsLoggedAndOthersRun(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	ran := false
	d.Subscribe(EventStaffCreated, func(context.Context, Event) error { return errors.New("smtp down") })
	d.Subscribe(EventStaffCreated, func(context.Context, Event) error {
		ran = true
		return nil
	})

	d.Publish(context.Background(), New(EventStaffCreated, "STF00001", Actor{StaffCode: "STF00002"}, nil))
	assert.True(t, ran)
	require.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
}

func TestNew_StampsEvent(t *testing.T) {
	e := New(EventUserStatusChanged, "USER9", Actor{StaffCode: "STF00001"}, StatusChangedPayload{OldStatus: "active", NewStatus: "suspended"})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, "STF00001", e.Actor.StaffCode)
}
