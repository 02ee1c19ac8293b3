package messaging

import (
	"load-tracking-service/src/internal/model"
	"load-tracking-service/src/pkg/kafka"
	"load-tracking-service/src/pkg/log"
)

type OrderProducer struct {
	StatusUpdateProducer Producer[*model.OrderStatusEvent]
}

func NewOrderProducer(producer kafka.Producer, log log.Log) *OrderProducer {
	return &OrderProducer{
		StatusUpdateProducer: Producer[*model.OrderStatusEvent]{
			Producer: producer,
			Topic:    "order-status-updated",
			Log:      log,
		},
	}
}

func (p *OrderProducer) SendStatusUpdate(event *model.OrderStatusEvent) error {
	return p.StatusUpdateProducer.Send(event)
}
