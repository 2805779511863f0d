package kafka

import (
	"Agora/internal/api/config"
	"context"
	log "log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// EventRecorder 搜索事件上报，失败只记日志不影响搜索结果
type EventRecorder interface {
	Record(ctx context.Context, event *SearchEvent)
	Close() error
}

type NopRecorder struct{}

func (NopRecorder) Record(context.Context, *SearchEvent) {}

func (NopRecorder) Close() error { return nil }

// DefaultSendTimeout 等待生产者接收消息的上限
const DefaultSendTimeout = 100 * time.Millisecond

// SearchEventProducer 基于 AsyncProducer，生产者在 sendTimeout 内未接收时丢弃事件
type SearchEventProducer struct {
	producer    sarama.AsyncProducer
	topic       string
	sendTimeout time.Duration
	wg          sync.WaitGroup
}

func NewSearchEventProducer(cfg *config.Config) (*SearchEventProducer, error) {
	producer, err := sarama.NewAsyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return NewSearchEventProducerWith(producer, cfg.KafkaSearchLogConsumer.Topic), nil
}

func NewSearchEventProducerWith(producer sarama.AsyncProducer, topic string) *SearchEventProducer {
	p := &SearchEventProducer{producer: producer, topic: topic, sendTimeout: DefaultSendTimeout}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for perr := range producer.Errors() {
			log.Error("search event send failed", "topic", perr.Msg.Topic, "err", perr.Err)
		}
	}()
	return p
}

func (p *SearchEventProducer) Record(ctx context.Context, event *SearchEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "search event marshal failed", "err", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.UserID, 10)),
		Value: sarama.ByteEncoder(payload),
	}
	timer := time.NewTimer(p.sendTimeout)
	defer timer.Stop()
	select {
	case p.producer.Input() <- msg:
	case <-timer.C:
		log.WarnContext(ctx, "search event dropped, producer busy", "event_id", event.EventID)
	case <-ctx.Done():
		log.WarnContext(ctx, "search event dropped, request canceled", "event_id", event.EventID)
	}
}

// Close 刷出缓冲中的消息后关闭
func (p *SearchEventProducer) Close() error {
	err := p.producer.Close()
	p.wg.Wait()
	return err
}
