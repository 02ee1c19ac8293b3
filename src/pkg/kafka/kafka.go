package kafka

import (
	"fmt"
	"strings"
	"time"

	"load-tracking-service/src/pkg/log"

	"github.com/IBM/sarama"
)

// Producer is what the messaging gateway depends on.
type Producer interface {
	Publish(topic string, key, value []byte) error
	Close() error
}

type Cfg struct {
	KafkaUrl      string
	KafkaUsername string
	KafkaPassword string
	AppName       string
}

type saramaProducer struct {
	producer sarama.SyncProducer
	log      log.Log
}

func NewProducer(cfg Cfg, logger log.Log) (Producer, error) {
	config := sarama.NewConfig()
	config.ClientID = cfg.AppName
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Timeout = 5 * time.Second

	if cfg.KafkaUsername != "" {
		config.Net.SASL.Enable = true
		config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		config.Net.SASL.User = cfg.KafkaUsername
		config.Net.SASL.Password = cfg.KafkaPassword
	}

	brokers := strings.Split(cfg.KafkaUrl, ",")
	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	logger.Info("kafka", "producer connected", "NewProducer", cfg.KafkaUrl)
	return &saramaProducer{producer: producer, log: logger}, nil
}

func (p *saramaProducer) Publish(topic string, key, value []byte) error {
	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.log.Error("kafka", fmt.Sprintf("failed to publish to %s: %v", topic, err), "Publish", "")
		return err
	}

	p.log.Info("kafka", fmt.Sprintf("published to %s partition=%d offset=%d", topic, partition, offset), "Publish", "")
	return nil
}

func (p *saramaProducer) Close() error {
	return p.producer.Close()
}
