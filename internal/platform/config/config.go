package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr  string
	Mongo Mongo
	Redis Redis
}

// Mongo captures document store connection settings.
type Mongo struct {
	URI      string
	Database string
}

// Redis captures cache connection settings. An empty URL means the in-memory
// cache is used instead.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SCHOLARHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	mongoURI := os.Getenv("SCHOLARHUB_MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("SCHOLARHUB_MONGO_DB")
	if mongoDB == "" {
		mongoDB = "scholarhub"
	}

	return Server{
		Addr: addr,
		Mongo: Mongo{
			URI:      mongoURI,
			Database: mongoDB,
		},
		Redis: Redis{
			URL:          os.Getenv("SCHOLARHUB_REDIS_URL"),
			PoolSize:     intEnv("SCHOLARHUB_REDIS_POOL_SIZE", 10),
			MinIdleConns: intEnv("SCHOLARHUB_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
