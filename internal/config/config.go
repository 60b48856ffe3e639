package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"UTC"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Postgres struct {
		URL      string `env:"DATABASE_URL"`
		MaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"slots_generator:slots_generator"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMQ struct {
		Enabled                  bool   `env:"RABBITMQ_ENABLED"`
		URL                      string `env:"RABBITMQ_URL"`
		Exchange                 string `env:"RABBITMQ_EXCHANGE" envDefault:"clinic.events"`
		AppointmentQueueName     string `env:"RABBITMQ_APPOINTMENT_QUEUE" envDefault:"slots-generator.appointment"`
		AppointmentQueueBind     string `env:"RABBITMQ_APPOINTMENT_QUEUE_BIND" envDefault:"clinic.slots-generator.appointment.*"`
		WorkingHoursQueueName    string `env:"RABBITMQ_WORKING_HOURS_QUEUE" envDefault:"slots-generator.working-hours"`
		WorkingHoursQueueBind    string `env:"RABBITMQ_WORKING_HOURS_QUEUE_BIND" envDefault:"clinic.slots-generator.workinghours.*"`
	}

	Cache struct {
		Enabled           bool `env:"CACHE_ENABLED"`
		ProfessionalsSize int  `env:"CACHE_PROFESSIONALS_SIZE" envDefault:"1000"`
	}

	Booking struct {
		LeadTimeMinutes int `env:"BOOKING_LEAD_TIME_MINUTES" envDefault:"60"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Разделение basic-клиентов
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	// Без RabbitMQ кэш некому инвалидировать, поэтому он выключается вместе с ним
	if !cfg.RabbitMQ.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

// LeadTime - минимальный отступ от текущего момента до начала слота,
// чтобы слот оставался доступным для записи
func (c *Config) LeadTime() time.Duration {
	return time.Duration(c.Booking.LeadTimeMinutes) * time.Minute
}

// Location возвращает таймзону приложения, при ошибке - UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
