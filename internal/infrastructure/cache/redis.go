package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"class-timetable/internal/domain/schedule"
	interfaces "class-timetable/internal/interfaces/infrastructure"

	"github.com/go-redis/redis/v8"
)

type RedisCache struct {
	client      *redis.Client
	scheduleTTL time.Duration
	lectureTTL  time.Duration
}

var _ interfaces.CacheService = (*RedisCache)(nil)

func NewRedisCache(addr, password string, db int, scheduleTTL, lectureTTL time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCache{
		client:      rdb,
		scheduleTTL: scheduleTTL,
		lectureTTL:  lectureTTL,
	}
}

func weeklyScheduleKey(userID string, version int64) string {
	return fmt.Sprintf("schedule:weekly:%s:%d", userID, version)
}

// The version key has no TTL so a user's version never moves backwards.
func weeklyVersionKey(userID string) string {
	return fmt.Sprintf("schedule:version:%s", userID)
}

func lectureDetailsKey(lectureID string) string {
	return fmt.Sprintf("lecture:details:%s", lectureID)
}

func (r *RedisCache) weeklyVersion(ctx context.Context, userID string) (int64, error) {
	version, err := r.client.Get(ctx, weeklyVersionKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get schedule version for %s: %w", userID, err)
	}
	return version, nil
}

func (r *RedisCache) GetWeeklySchedule(ctx context.Context, userID string) (*schedule.WeeklySchedule, int64, error) {
	version, err := r.weeklyVersion(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var week schedule.WeeklySchedule
	found, err := r.getJSON(ctx, weeklyScheduleKey(userID, version), &week)
	if err != nil || !found {
		return nil, version, err
	}
	return &week, version, nil
}

func (r *RedisCache) SetWeeklySchedule(ctx context.Context, userID string, version int64, week schedule.WeeklySchedule) error {
	return r.setJSON(ctx, weeklyScheduleKey(userID, version), week, r.scheduleTTL)
}

// InvalidateWeeklySchedule bumps the user's version and drops the view it replaces.
func (r *RedisCache) InvalidateWeeklySchedule(ctx context.Context, userID string) error {
	version, err := r.client.Incr(ctx, weeklyVersionKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to bump schedule version for %s: %w", userID, err)
	}
	return r.delete(ctx, weeklyScheduleKey(userID, version-1))
}

func (r *RedisCache) GetLectureDetails(ctx context.Context, lectureID string) (*schedule.Lecture, error) {
	var lecture schedule.Lecture
	found, err := r.getJSON(ctx, lectureDetailsKey(lectureID), &lecture)
	if err != nil || !found {
		return nil, err
	}
	return &lecture, nil
}

func (r *RedisCache) SetLectureDetails(ctx context.Context, lecture *schedule.Lecture) error {
	return r.setJSON(ctx, lectureDetailsKey(lecture.ID), lecture, r.lectureTTL)
}

func (r *RedisCache) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisCache) setJSON(ctx context.Context, key string, data any, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}
	return nil
}

func (r *RedisCache) delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
