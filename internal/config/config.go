// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек панели подписок
type Config struct {
	Env             string `yaml:"env"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	JWTToken        `yaml:"jwttoken"`
	Remote          `yaml:"remote"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis —
// локальному key-value хранилищу записей, флага аутентификации и темы
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

// Remote структура для настройки внешнего хранилища подписок
// и канала уведомлений об изменениях. Блок опционален: при
// Enabled=false приложение работает только с локальным хранилищем.
type Remote struct {
	Enabled                  bool          `yaml:"enabled"`
	PostgresConnectionString string        `yaml:"postgres_connection_string"`
	AmqpConnectionString     string        `yaml:"amqp_connection_string"`
	QueueName                string        `yaml:"queue_name"`
	RoutingKey               string        `yaml:"routing_key"`
	MigrationsPath           string        `yaml:"migrations_path"`
	ConnectRetries           int           `yaml:"connect_retries"`
	RetryDelay               time.Duration `yaml:"retry_delay"`
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"  MaxRetries: %d\n"+
			"  DialTimeout: %s\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"Remote:\n"+
			"  Enabled: %t\n"+
			"  Queue: %s\n",
		c.Env,
		c.AddressRedis,
		c.User,
		c.DB,
		c.MaxRetries,
		c.DialTimeout,
		c.TimeoutRedis,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.TokenTTL,
		c.Remote.Enabled,
		c.QueueName,
	)
}
