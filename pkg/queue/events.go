package queue

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher 是事件发布方的最小依赖面，由 mq.Client 满足.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// -------------------------- 基于业务封装 events --------------------------

// PublishTenantDeleted 发布 tv.tenant.deleted 事件。
// 删除事务提交后调用，通知下游（审计落盘、缓存失效、搜索索引清理等）。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishTenantDeleted(ctx context.Context, pub Publisher, payload TenantDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicTenantDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, TopicTenantDeleted, msg)
}

// ParseTenantDeleted 将 Watermill 消息解析为强类型 Envelope（TenantDeletedPayload）。
func ParseTenantDeleted(msg *message.Message) (Message[TenantDeletedPayload], error) {
	return ParseWatermillMessage[TenantDeletedPayload](msg)
}

// PublishTenantDeleteFailed 发布 tv.tenant.delete.failed 事件。
func PublishTenantDeleteFailed(ctx context.Context, pub Publisher, payload TenantDeleteFailedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicTenantDeleteFailed, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, TopicTenantDeleteFailed, msg)
}

// PublishQuarantineCreated 发布 tv.quarantine.created 事件。
func PublishQuarantineCreated(ctx context.Context, pub Publisher, payload QuarantineCreatedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicQuarantineCreated, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, TopicQuarantineCreated, msg)
}

// PublishUsersDetached 发布 tv.tenant.users.detached 事件。
func PublishUsersDetached(ctx context.Context, pub Publisher, payload UsersDetachedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicUsersDetached, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, TopicUsersDetached, msg)
}

// PublishLoginDenied 发布 tv.tenant.login.denied 事件。
func PublishLoginDenied(ctx context.Context, pub Publisher, payload LoginDeniedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicLoginDenied, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, TopicLoginDenied, msg)
}

// PublishGrantGranted 发布 tv.grant.granted 事件。
func PublishGrantGranted(ctx context.Context, pub Publisher, payload GrantChangedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicGrantGranted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, TopicGrantGranted, msg)
}

// PublishGrantRevoked 发布 tv.grant.revoked 事件。
func PublishGrantRevoked(ctx context.Context, pub Publisher, payload GrantChangedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicGrantRevoked, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, TopicGrantRevoked, msg)
}
