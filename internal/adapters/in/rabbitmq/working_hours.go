package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

type WorkingHoursEventMessage struct {
	ProfessionalID uuid.UUID `json:"professionalId"`
}

func (l *EventListener) startWorkingHoursQueue(ctx context.Context) error {
	msgs, err := l.declareAndConsume(
		l.cfg.RabbitMQ.WorkingHoursQueueName,
		l.cfg.RabbitMQ.WorkingHoursQueueBind,
	)
	if err != nil {
		return err
	}

	go l.consumeWorkingHours(ctx, msgs)
	return nil
}

func (l *EventListener) consumeWorkingHours(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			// Закрытый канал доставки означает потерю соединения
			if !ok {
				return
			}
			if err := l.processWorkingHoursMessage(ctx, msg); err != nil {
				msg.Nack(false, true) // requeue message
				continue
			}
			msg.Ack(false)
		}
	}
}

func (l *EventListener) processWorkingHoursMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseEventRoutingKey(msg)
	if err != nil {
		l.logger.Warn("working_hours.message.bad_routing_key", out.LogFields{
			"routingKey": msg.RoutingKey,
			"error":      err.Error(),
		})
		return nil
	}

	if routingKey.ResourceType != EventResourceTypeWorkingHours {
		return nil
	}

	var msgJson WorkingHoursEventMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		l.logger.Warn("working_hours.message.decode_failed", out.LogFields{
			"error":     err.Error(),
			"msgString": string(msg.Body),
		})
		return nil
	}

	l.logger.Info("working_hours.message.received", out.LogFields{
		"professionalId": msgJson.ProfessionalID,
		"action":         routingKey.Action,
	})

	// Изменение правил делает сгенерированные слоты специалиста неактуальными.
	// Без ID специалиста сбрасываем весь кэш
	if msgJson.ProfessionalID == uuid.Nil {
		l.useCase.InvalidateAllSlots(ctx)
		return nil
	}

	l.useCase.InvalidateProfessionalSlots(ctx, msgJson.ProfessionalID)
	return nil
}
