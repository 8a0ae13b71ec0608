package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis
var redisStopped bool

// NewRedis returns a client connected to a process-wide miniredis instance.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		redisConn = openRedisConn()
	})
	return redisConn
}

func openRedisConn() *redis.Client {
	var err error
	redisServer, err = miniredis.Run()
	if err != nil {
		panic(err)
	}

	return redis.NewClient(&redis.Options{
		Addr: redisServer.Addr(),
	})
}

// ClearRedis drops every key, including summary cache entries and rate limit counters.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}

// StopRedis simulates a cache outage; the client stays usable but every call fails.
func StopRedis() {
	if redisServer != nil && !redisStopped {
		redisServer.Close()
		redisStopped = true
	}
}

// RestartRedis brings a stopped instance back on the same address.
func RestartRedis() error {
	if redisServer == nil || !redisStopped {
		return nil
	}
	redisStopped = false
	return redisServer.Restart()
}
