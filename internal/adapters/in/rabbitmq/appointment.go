package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

type AppointmentEventMessage struct {
	Appointment domain.Appointment `json:"appointment"`
}

func (l *EventListener) startAppointmentQueue(ctx context.Context) error {
	msgs, err := l.declareAndConsume(
		l.cfg.RabbitMQ.AppointmentQueueName,
		l.cfg.RabbitMQ.AppointmentQueueBind,
	)
	if err != nil {
		return err
	}

	go l.consumeAppointments(ctx, msgs)
	return nil
}

func (l *EventListener) consumeAppointments(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			// Закрытый канал доставки означает потерю соединения
			if !ok {
				return
			}
			if err := l.processAppointmentMessage(ctx, msg); err != nil {
				msg.Nack(false, true) // requeue message
				continue
			}
			msg.Ack(false)
		}
	}
}

func (l *EventListener) processAppointmentMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseEventRoutingKey(msg)
	if err != nil {
		// Битый ключ маршрутизации подтверждаем, иначе сообщение зациклится
		l.logger.Warn("appointment.message.bad_routing_key", out.LogFields{
			"routingKey": msg.RoutingKey,
			"error":      err.Error(),
		})
		return nil
	}

	if routingKey.ResourceType != EventResourceTypeAppointment {
		return nil
	}

	var msgJson AppointmentEventMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		// Нечитаемое тело тоже подтверждаем
		l.logger.Warn("appointment.message.decode_failed", out.LogFields{
			"error":     err.Error(),
			"msgString": string(msg.Body),
		})
		return nil
	}

	l.logger.Info("appointment.message.received", out.LogFields{
		"appointmentId": msgJson.Appointment.ID,
		"action":        routingKey.Action,
	})

	return l.useCase.ReconcileAppointment(ctx, msgJson.Appointment)
}
