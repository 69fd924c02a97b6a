package queue_test

import (
	"testing"

	"github.com/yeisme/tenantvault/pkg/queue"
)

// TestEnvelopeRoundtrip 信封编码后可完整解出头部与负载.
func TestEnvelopeRoundtrip(t *testing.T) {
	payload := queue.TenantDeletedPayload{
		Tenant:             queue.TenantRef{TenantID: 42, TenantName: "Acme"},
		OperationID:        "01JABCDEF",
		ActorID:            7,
		FoldersReassigned:  3,
		FilesReassigned:    9,
		UsersDetached:      2,
		QuarantineFolderID: 100,
	}

	msg, err := queue.NewWatermillMessage(queue.TopicTenantDeleted, payload,
		queue.WithTraceID("trace-1"), queue.WithProducer("tenantvault"))
	if err != nil {
		t.Fatalf("NewWatermillMessage: %v", err)
	}

	env, err := queue.ParseWatermillMessage[queue.TenantDeletedPayload](msg)
	if err != nil {
		t.Fatalf("ParseWatermillMessage: %v", err)
	}

	if env.Header.Topic != queue.TopicTenantDeleted || env.Header.Version != queue.PayloadVersionV1 {
		t.Errorf("unexpected header: %+v", env.Header)
	}

	if env.Header.TraceID != "trace-1" || env.Header.Producer != "tenantvault" {
		t.Errorf("options not applied: %+v", env.Header)
	}

	if env.Payload != payload {
		t.Errorf("payload mismatch: %+v", env.Payload)
	}

	if msg.Metadata.Get("topic") != queue.TopicTenantDeleted {
		t.Errorf("topic metadata missing: %v", msg.Metadata)
	}
}

// TestMessageIDDeterministic 同一负载重发得到相同 ID，不同负载不同 ID.
func TestMessageIDDeterministic(t *testing.T) {
	payload := queue.LoginDeniedPayload{UserID: 5, Reason: "tenant not active"}

	m1, err := queue.NewWatermillMessage(queue.TopicLoginDenied, payload)
	if err != nil {
		t.Fatalf("NewWatermillMessage: %v", err)
	}

	// 头部时间戳不同，ID 仍然一致
	m2, err := queue.NewWatermillMessage(queue.TopicLoginDenied, payload)
	if err != nil {
		t.Fatalf("NewWatermillMessage: %v", err)
	}

	if m1.UUID != m2.UUID {
		t.Errorf("expected deterministic ID, got %s and %s", m1.UUID, m2.UUID)
	}

	other := queue.LoginDeniedPayload{UserID: 6, Reason: "tenant not active"}

	m3, err := queue.NewWatermillMessage(queue.TopicLoginDenied, other)
	if err != nil {
		t.Fatalf("NewWatermillMessage: %v", err)
	}

	if m1.UUID == m3.UUID {
		t.Error("different payloads must not share an ID")
	}
}
