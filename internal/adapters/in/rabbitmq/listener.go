package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	"github.com/medagenda/clinic-slots-generator/internal/config"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/in"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventListener слушает события клиники и поддерживает кэш слотов
// в актуальном состоянии
type EventListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.SlotGeneratorUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	EventResourceType string
	EventAction       string
)

const (
	EventResourceTypeAppointment  EventResourceType = "appointment"
	EventResourceTypeWorkingHours EventResourceType = "workinghours"
)

const (
	EventActionCreated   EventAction = "created"
	EventActionUpdated   EventAction = "updated"
	EventActionCancelled EventAction = "cancelled"
)

type EventRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType EventResourceType
	Action       EventAction
}

func NewEventListener(useCase in.SlotGeneratorUseCase, cfg *config.Config, logger out.LoggerPort) (*EventListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &EventListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *EventListener) Start(ctx context.Context) error {
	if err := l.startAppointmentQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.AppointmentQueueName,
	})

	if err := l.startWorkingHoursQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("working_hours.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.WorkingHoursQueueName,
	})

	return nil
}

func (l *EventListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

// Пример routingKey:
// clinic.slots-generator.appointment.created
// clinic.slots-generator.appointment.cancelled
// clinic.slots-generator.workinghours.updated
func (l *EventListener) parseEventRoutingKey(msg amqp.Delivery) (EventRoutingKey, error) {
	parts := strings.Split(msg.RoutingKey, ".")
	if len(parts) < 4 {
		return EventRoutingKey{}, fmt.Errorf("invalid routing key: %s", msg.RoutingKey)
	}

	return EventRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: EventResourceType(parts[2]),
		Action:       EventAction(parts[3]),
	}, nil
}

// declareAndConsume объявляет очередь, привязывает ее к обменнику событий
// и возвращает канал доставки
func (l *EventListener) declareAndConsume(queueName, bindingKey string) (<-chan amqp.Delivery, error) {
	queue, err := l.channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}

	err = l.channel.QueueBind(
		queue.Name,
		bindingKey,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
}
