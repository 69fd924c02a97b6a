package mq

import (
	"context"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"

	"github.com/yeisme/tenantvault/pkg/configs"
)

const (
	defaultDrainTimeout = 30 * time.Second
	defaultFlushTimeout = 10 * time.Second
)

// init 注册 NATS 工厂.
func init() {
	RegisterFactory(configs.MQTypeNATS, natsFactory)
}

// buildNatsOptions 构建 NATS 连接选项，含重连与认证（JWT > NKey > 用户名/密码）.
func buildNatsOptions(cfg *configs.MQConfig) []nc.Option {
	opts := []nc.Option{
		nc.Name(cfg.ClientID),
		nc.MaxReconnects(cfg.MaxReconnects),
		nc.ReconnectWait(time.Duration(cfg.ReconnectWait) * time.Second),
		nc.PingInterval(time.Duration(cfg.PingInterval) * time.Second),
		nc.ReconnectBufSize(cfg.BufferSize),
		nc.DrainTimeout(defaultDrainTimeout),
		nc.FlusherTimeout(defaultFlushTimeout),
		nc.RetryOnFailedConnect(true),
	}

	switch {
	case cfg.JWT != "":
		opts = append(opts, nc.UserJWTAndSeed(cfg.JWT, cfg.NKey))
	case cfg.NKey != "":
		opts = append(opts, nc.Nkey(cfg.NKey, nil))
	case cfg.User != "":
		opts = append(opts, nc.UserInfo(cfg.User, cfg.Password))
	}

	return opts
}

// buildJetStreamConfig 构建 JetStream 配置.
// TrackMsgId 配合确定性消息 id 实现 broker 端去重，租户删除事件重发不会被重复消费.
func buildJetStreamConfig(cfg *configs.MQConfig, logger watermill.LoggerAdapter) nats.JetStreamConfig {
	jsCfg := nats.JetStreamConfig{
		Disabled: !cfg.JetStreamEnabled,
	}

	if cfg.JetStreamEnabled {
		jsCfg.AutoProvision = cfg.JetStreamAutoProvision
		jsCfg.TrackMsgId = cfg.JetStreamTrackMsgID
		jsCfg.AckAsync = cfg.JetStreamAckAsync
		jsCfg.DurablePrefix = cfg.JetStreamDurablePrefix

		logger.Info("JetStream enabled", watermill.LogFields{
			"auto_provision": cfg.JetStreamAutoProvision,
			"track_msg_id":   cfg.JetStreamTrackMsgID,
			"ack_async":      cfg.JetStreamAckAsync,
			"durable_prefix": cfg.JetStreamDurablePrefix,
			"stream_name":    cfg.StreamName,
			"subject_prefix": cfg.SubjectPrefix,
		})
	}

	return jsCfg
}

// buildURL 构建连接 URL，集群地址优先.
func buildURL(cfg *configs.MQConfig) string {
	if len(cfg.ClusterURLs) > 0 {
		return strings.Join(cfg.ClusterURLs, ",")
	}

	return cfg.URL
}

// natsFactory 创建 NATS Publisher & Subscriber，JetStream 可选.
func natsFactory(
	ctx context.Context,
	cfg *configs.MQConfig,
	logger watermill.LoggerAdapter) (
	message.Publisher, message.Subscriber, error) {
	opts := buildNatsOptions(cfg)
	jsCfg := buildJetStreamConfig(cfg, logger)
	marshaler := &nats.JSONMarshaler{}
	url := buildURL(cfg)

	pub, err := nats.NewPublisher(nats.PublisherConfig{
		NatsOptions: opts,
		JetStream:   jsCfg,
		Marshaler:   marshaler,
		URL:         url,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	sub, err := nats.NewSubscriber(nats.SubscriberConfig{
		NatsOptions: opts,
		JetStream:   jsCfg,
		Unmarshaler: marshaler,
		URL:         url,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	return pub, sub, nil
}
