package mailer

import (
	"context"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Worker consumes email payloads from the mailer queue and delivers them over
// SMTP. Malformed payloads are acked and dropped to avoid a poison loop;
// delivery failures are nacked once for redelivery.
type Worker struct {
	log     *zap.Logger
	channel *amqp091.Channel
	sender  contracts.EmailSender
	queue   string
	stop    chan struct{}
}

func NewWorker(log *zap.Logger, conn *amqp091.Connection, sender contracts.EmailSender, queue string) (*Worker, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	if err := channel.Qos(1, 0, false); err != nil {
		return nil, err
	}

	return &Worker{
		log:     log,
		channel: channel,
		sender:  sender,
		queue:   queue,
		stop:    make(chan struct{}),
	}, nil
}

func (w *Worker) Start(ctx context.Context) (stop func(), err error) {
	deliveries, err := w.channel.Consume(w.queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(ctx, d)
			}
		}
	}()

	return func() {
		close(w.stop)
	}, nil
}

func (w *Worker) handle(ctx context.Context, d amqp091.Delivery) {
	var payload requests.EmailPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.log.Error("mailer.Worker.handle dropping malformed payload",
			zap.Error(err),
		)
		_ = d.Ack(false)
		return
	}

	if err := w.sender.Send(ctx, &payload); err != nil {
		w.log.Error("mailer.Worker.handle failed sending email",
			zap.String(constvars.LoggingEmailToKey, payload.To),
			zap.Error(err),
		)
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	w.log.Info("mailer.Worker.handle email sent",
		zap.String(constvars.LoggingEmailToKey, payload.To),
	)
	_ = d.Ack(false)
}
