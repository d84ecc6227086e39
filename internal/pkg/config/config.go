package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

// Config is the booking API configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Booking BookingConfig
	Cache   CacheConfig
	Events  EventsConfig
	Payment PaymentConfig
}

// NotifierConfig is the notification receiver configuration.
type NotifierConfig struct {
	Server ServerConfig
	Mongo  MongoConfig
	SMTP   SMTPConfig
	Retry  RetryConfig
	AMQP   AMQPConsumerConfig
	Ops    OpsConfig
	Log    LogConfig
}

// AuditConfig is the audit receiver configuration.
type AuditConfig struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr         string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"2s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"1s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"1s"`
}

type MongoConfig struct {
	URI        string        `envconfig:"MONGO_URI" required:"true"`
	Database   string        `envconfig:"MONGO_DATABASE" default:"notification_service"`
	Collection string        `envconfig:"MONGO_COLLECTION" default:"notifications"`
	Timeout    time.Duration `envconfig:"MONGO_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// LockTTL must exceed the worst-case booking critical section.
type BookingConfig struct {
	LockTTL      time.Duration `envconfig:"BOOKING_LOCK_TTL" default:"10s"`
	SlotCacheTTL time.Duration `envconfig:"BOOKING_SLOT_CACHE_TTL" default:"60s"`
}

type CacheConfig struct {
	UserAppointmentsTTL time.Duration `envconfig:"CACHE_USER_APPOINTMENTS_TTL" default:"30s"`
	DoctorsListTTL      time.Duration `envconfig:"CACHE_DOCTORS_LIST_TTL" default:"5m"`
	DashboardTTL        time.Duration `envconfig:"CACHE_DASHBOARD_TTL" default:"60s"`
	ProfileTTL          time.Duration `envconfig:"CACHE_PROFILE_TTL" default:"10m"`
	AppointmentListTTL  time.Duration `envconfig:"CACHE_APPOINTMENT_LIST_TTL" default:"30s"`
}

type EventsConfig struct {
	NotificationURL string        `envconfig:"EVENT_NOTIFICATION_URL" default:"http://localhost:5001"`
	AuditURL        string        `envconfig:"EVENT_AUDIT_URL" default:"http://localhost:5002"`
	// Timeout must exceed the notifier's SMTP_SEND_TIMEOUT plus its outbox
	// write, since the notifier replies only after the inline email attempt.
	Timeout         time.Duration `envconfig:"EVENT_TIMEOUT" default:"15s"`
	AMQPURL         string        `envconfig:"EVENT_AMQP_URL"`
	AMQPExchange    string        `envconfig:"EVENT_AMQP_EXCHANGE" default:"appointment.events"`
}

type PaymentConfig struct {
	WebhookSecret string `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp-relay.brevo.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM" required:"true"`

	// SendTimeout bounds one email attempt, inline on ingest and in the retry sweep.
	SendTimeout time.Duration `envconfig:"SMTP_SEND_TIMEOUT" default:"8s"`
}

type RetryConfig struct {
	Schedule    string `envconfig:"RETRY_SCHEDULE" default:"@every 2m"`
	MaxAttempts int    `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	BatchSize   int    `envconfig:"RETRY_BATCH_SIZE" default:"100"`
}

// OpsConfig guards operator endpoints such as the dead-letter listing.
type OpsConfig struct {
	Secret string `envconfig:"OPS_SECRET" required:"true"`
}

// AMQPConsumerConfig is optional; an empty URL disables the queue consumer.
type AMQPConsumerConfig struct {
	URL      string `envconfig:"EVENT_AMQP_URL"`
	Exchange string `envconfig:"EVENT_AMQP_EXCHANGE" default:"appointment.events"`
	Queue    string `envconfig:"EVENT_AMQP_QUEUE" default:"notification.events"`
	Prefetch int    `envconfig:"EVENT_AMQP_PREFETCH" default:"8"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func LoadNotifierConfig() (NotifierConfig, error) {
	var cfg NotifierConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return NotifierConfig{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func LoadAuditConfig() (AuditConfig, error) {
	var cfg AuditConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AuditConfig{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Booking: BookingConfig{
			LockTTL:      10 * time.Second,
			SlotCacheTTL: 60 * time.Second,
		},
		Cache: CacheConfig{
			UserAppointmentsTTL: 30 * time.Second,
			DoctorsListTTL:      5 * time.Minute,
			DashboardTTL:        60 * time.Second,
			ProfileTTL:          10 * time.Minute,
			AppointmentListTTL:  30 * time.Second,
		},
		Events: EventsConfig{
			Timeout: time.Second,
		},
		Payment: PaymentConfig{
			WebhookSecret: "test-webhook-secret",
		},
	}
}
