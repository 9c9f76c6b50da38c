package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoClient    *mongo.Client
	Redis          *redis.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// DispatcherStop drains the side-effect workers during Shutdown
	DispatcherStop func(ctx context.Context) error
	CronStop       func()
	MailerStop     func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.CronStop != nil {
		b.CronStop()
		log.Println("Successfully stopped cron jobs")
	}

	if b.MailerStop != nil {
		b.MailerStop()
		log.Println("Successfully stopped mailer worker")
	}

	if b.DispatcherStop != nil {
		if err := b.DispatcherStop(ctx); err != nil {
			return err
		}
		log.Println("Successfully drained dispatcher")
	}

	if err := b.MongoClient.Disconnect(ctx); err != nil {
		return err
	}
	log.Println("Successfully closing MongoDB")

	if err := b.Redis.Close(); err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	if err := b.RabbitMQ.Close(); err != nil {
		return err
	}
	log.Println("Successfully closing RabbitMQ")

	if err := b.Logger.Sync(); err != nil {
		return err
	}
	log.Println("Successfully closing Logger")

	return nil
}
