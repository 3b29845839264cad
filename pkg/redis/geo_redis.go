package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const userGeoKey = "users:geo"

// IndexUserLocation stores the user's coordinates in the geo set.
func (r *RedisClient) IndexUserLocation(ctx context.Context, userID uint, lat, lon float64) error {
	err := r.Client.GeoAdd(ctx, userGeoKey, &redis.GeoLocation{
		Name:      strconv.FormatUint(uint64(userID), 10),
		Longitude: lon,
		Latitude:  lat,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to index user %d: %w", userID, err)
	}
	return nil
}

func (r *RedisClient) RemoveUserLocation(ctx context.Context, userID uint) error {
	return r.Client.ZRem(ctx, userGeoKey, strconv.FormatUint(uint64(userID), 10)).Err()
}

// NearbyUserIDs returns every indexed user within radiusMiles of the point.
func (r *RedisClient) NearbyUserIDs(ctx context.Context, lat, lon, radiusMiles float64) ([]uint, error) {
	locs, err := r.Client.GeoRadius(ctx, userGeoKey, lon, lat, &redis.GeoRadiusQuery{
		Radius: radiusMiles,
		Unit:   "mi",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("geo radius query failed: %w", err)
	}

	ids := make([]uint, 0, len(locs))
	for _, loc := range locs {
		id, err := strconv.ParseUint(loc.Name, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
