package config

import (
	"context"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env  string
	Port int

	DBURL            string
	DBMaxConns       int32
	DBIdleTimeout    time.Duration
	DBConnectTimeout time.Duration

	OTLPEndpoint string
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 3000)

	return Config{
		Env:              env,
		Port:             port,
		DBURL:            buildDBURL(),
		DBMaxConns:       int32(getEnvInt("DB_MAX_CONNS", 20)),
		DBIdleTimeout:    time.Duration(getEnvInt("DB_IDLE_TIMEOUT_MS", 30000)) * time.Millisecond,
		DBConnectTimeout: time.Duration(getEnvInt("DB_CONNECT_TIMEOUT_MS", 2000)) * time.Millisecond,
		OTLPEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASSWORD", "password")
	name := getEnv("DB_NAME", "users_db")
	ssl := getEnv("DB_SSLMODE", "disable")

	// Cloud SQL style unix socket connections: the socket directory replaces
	// the TCP host and TLS is off.
	if socket := getEnv("DB_SOCKET_PATH", ""); socket != "" {
		return "postgres://" + url.UserPassword(user, pass).String() +
			"@/" + name + "?host=" + url.QueryEscape(socket) + "&sslmode=disable"
	}

	return "postgres://" + url.UserPassword(user, pass).String() +
		"@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}
