package kafka

import (
	"Agora/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理搜索事件消费者
type ConsumerManager struct {
	topic             string
	searchLogConsumer sarama.ConsumerGroup
	searchLogHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg *config.Config, handler sarama.ConsumerGroupHandler) (*ConsumerManager, error) {
	consumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaSearchLogConsumer.GroupID, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return NewConsumerManagerWith(cfg.KafkaSearchLogConsumer.Topic, consumer, handler), nil
}

func NewConsumerManagerWith(topic string, consumer sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler) *ConsumerManager {
	return &ConsumerManager{
		topic:             topic,
		searchLogConsumer: consumer,
		searchLogHandler:  handler,
	}
}

// Start 阻塞直到 ctx 结束，期间 rebalance 后重新加入消费组
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.searchLogConsumer.Errors() {
			log.Error("search log consumer error", "err", err)
		}
	}()

	go func() {
		log.Info("Search log consumer started", "topic", m.topic)
		for {
			if err := m.searchLogConsumer.Consume(ctx, []string{m.topic}, m.searchLogHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.searchLogConsumer.Close(); err != nil {
		log.Error("Failed to close search log consumer", "err", err)
		return err
	}
	return nil
}
