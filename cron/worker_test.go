package cron

import (
	"context"
	"testing"
	"time"

	"krib/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorRedisConnectionStopsOnCancel(t *testing.T) {
	mr := miniredis.RunT(t)
	config.AppConfig.RedisAddr = mr.Addr()
	config.AppConfig.RedisPassword = ""
	config.AppConfig.RedisQueueDB = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		monitorRedisConnection(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor kept running after context cancellation")
	}
}

func TestHandleConfirmationTaskRejectsMalformedPayload(t *testing.T) {
	task := asynq.NewTask(TypeConfirmationNotify, []byte("{not json"))
	err := handleConfirmationTask(context.Background(), task)
	require.Error(t, err)
}

func TestHandleConfirmationTaskAcceptsBookingRecord(t *testing.T) {
	task := asynq.NewTask(TypeConfirmationNotify,
		[]byte(`{"confirmationCode":"ABC123","customerName":"Jane Doe"}`))
	assert.NoError(t, handleConfirmationTask(context.Background(), task))
}
