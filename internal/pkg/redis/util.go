package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetInt64 获取整型计数值，键不存在时返回 redis.Nil
func GetInt64(ctx context.Context, key string) (int64, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

// IncrBy 计数器自增
func IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return Rdb.IncrBy(ctx, key, delta).Result()
}

// SAdd 向集合添加成员
func SAdd(ctx context.Context, key string, members ...string) error {
	return Rdb.SAdd(ctx, key, members).Err()
}

// GetSet 获取集合
func GetSet(ctx context.Context, key string) ([]string, error) {
	value, err := Rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return value, nil
}

// ZAdd 向有序集合添加一个或多个成员，或者更新已存在成员的分数
func ZAdd(ctx context.Context, key string, score float64, member string) error {
	return Rdb.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

// ZRevRangeWithScores 获取有序集合中指定区间内的成员及分数，分数从高到低排序
func ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) ([]redis.Z, error) {
	value, err := Rdb.ZRevRangeWithScores(ctx, key, start, stop).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

// HSet 设置哈希字段
func HSet(ctx context.Context, key string, values ...interface{}) error {
	return Rdb.HSet(ctx, key, values...).Err()
}

// HGetInt64 获取哈希字段的整型值，缺失时返回 0
func HGetInt64(ctx context.Context, key, field string) int64 {
	value, err := Rdb.HGet(ctx, key, field).Result()
	if err != nil {
		return 0
	}
	n, _ := strconv.ParseInt(value, 10, 64)
	return n
}

// GetDelInt64 原子读取并删除计数键，缺失时返回 0
func GetDelInt64(ctx context.Context, key string) (int64, error) {
	value, err := Rdb.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

func Rename(ctx context.Context, oldKey string, newKey string) error {
	return Rdb.Rename(ctx, oldKey, newKey).Err()
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	return Rdb.Del(ctx, key).Err()
}
