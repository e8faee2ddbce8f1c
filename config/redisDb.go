package config

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)
var rctx = context.Background()

func GetRedisDB() *redis.Client {
	return rdb
}

func GetRedisLock() *redislock.Client {
	return locker
}

// ConnectRedis wires the optional cache/lock client. Redis being down is
// never fatal: every helper below degrades to a no-op when rdb is nil.
func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(rctx).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v (continuing without cache)", addr, err)
		return
	}
	rdb = client
	locker = redislock.New(client)
}

func GetRedisObject(key string, dest interface{}) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(rctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(val), &dest); err != nil {
		return false, err
	}
	return true, nil
}

func SetRedisObject(key string, obj interface{}, exp time.Duration) error {
	if rdb == nil {
		return nil
	}
	objInByte, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return rdb.Set(rctx, key, objInByte, exp).Err()
}

func DeleteRedisKeys(keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(rctx, keys...).Err()
}
