package config

import (
	kafkaPkg "load-tracking-service/src/pkg/kafka"
	"load-tracking-service/src/pkg/log"

	"github.com/spf13/viper"
)

func NewKafkaProducer(config *viper.Viper, log log.Log) kafkaPkg.Producer {
	if !config.GetBool("kafka.producer.enabled") {
		log.Info("kafka-config", "Kafka producer is disabled in configuration", "kafka", "")
		return nil
	}

	producer, err := kafkaPkg.NewProducer(kafkaPkg.Cfg{
		KafkaUrl:      config.GetString("kafka.bootstrap.servers"),
		KafkaUsername: config.GetString("kafka.username"),
		KafkaPassword: config.GetString("kafka.password"),
		AppName:       config.GetString("kafka.app.name"),
	}, log)
	if err != nil {
		panic(err)
	}

	return producer
}
