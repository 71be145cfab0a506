package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

type testSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error for empty redis url")
	}
}

func TestNewClientRejectsInvalidRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{redisURL: "not-a-url"}); err == nil {
		t.Fatal("expected error for malformed redis url")
	}
}

func TestScheduleAppointmentReminderEnqueuesTask(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{
		redisURL: "redis://" + mr.Addr(),
		queue:    "qualifica",
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	runAt := time.Now().Add(24 * time.Hour)
	err = client.ScheduleAppointmentReminder(context.Background(), AppointmentReminderPayload{
		AppointmentID: uuid.New().String(),
		TenantID:      uuid.New().String(),
	}, runAt)
	if err != nil {
		t.Fatalf("ScheduleAppointmentReminder returned error: %v", err)
	}

	if len(mr.Keys()) == 0 {
		t.Fatal("expected enqueued task to write redis keys")
	}
}

func TestScheduleAppointmentReminderNilClientIsNoOp(t *testing.T) {
	var c *Client
	err := c.ScheduleAppointmentReminder(context.Background(), AppointmentReminderPayload{}, time.Now())
	if err != nil {
		t.Fatalf("nil client should be a no-op, got error: %v", err)
	}
}

func TestRedisClientOptParsesURL(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@localhost:6380/2", false)
	if err != nil {
		t.Fatalf("redisClientOpt returned error: %v", err)
	}
	if opt.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr: %q", opt.Addr)
	}
	if opt.Password != "secret" {
		t.Fatalf("unexpected password: %q", opt.Password)
	}
	if opt.DB != 2 {
		t.Fatalf("unexpected db: %d", opt.DB)
	}
	if opt.TLSConfig != nil {
		t.Fatal("expected no tls config for plain redis url")
	}
}

func TestRedisClientOptInsecureTLS(t *testing.T) {
	opt, err := redisClientOpt("rediss://localhost:6379", true)
	if err != nil {
		t.Fatalf("redisClientOpt returned error: %v", err)
	}
	if opt.TLSConfig == nil {
		t.Fatal("expected tls config for rediss url")
	}
	if !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected InsecureSkipVerify to be set")
	}
}
