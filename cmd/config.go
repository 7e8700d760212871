package main

import "time"

type Config struct {
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=5000"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	AssetsDir            string        `env:"ASSETS_DIR,default=./assets"`
	JWTSecret            string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=168h"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	DeliveryTimeout      time.Duration `env:"DELIVERY_TIMEOUT,default=2s"`
	PresenceTimeout      time.Duration `env:"PRESENCE_TIMEOUT,default=250ms"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=5s"`
	PingInterval         time.Duration `env:"PING_INTERVAL,default=30s"`
	MaxTextLength        int           `env:"MAX_TEXT_LENGTH,default=2000"`
	BodyLimit            int           `env:"BODY_LIMIT,default=4194304"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=1s"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=5s"`
	HeartbeatInterval    time.Duration `env:"HEARTBEAT_INTERVAL,default=1m"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	DebugPort            int           `env:"DEBUG_PORT,default=8081"`
}
