package cache

import (
	"fmt"

	"class-timetable/internal/config"
	interfaces "class-timetable/internal/interfaces/infrastructure"
)

// New returns the cache selected by cfg.Type.
func New(cfg config.CacheConfig) (interfaces.CacheService, error) {
	switch cfg.Type {
	case "redis":
		return NewRedisCache(cfg.Addr(), cfg.Password, cfg.DB, cfg.ScheduleExpiration(), cfg.LectureExpiration()), nil
	case "none", "":
		return NoopCache{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache type %q", cfg.Type)
	}
}
