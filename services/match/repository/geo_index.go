package repository

import (
	"context"

	"friender/pkg/geo"
	"friender/pkg/redis"
)

// GeoIndex keeps user locations in a redis geo set so candidate scans only
// load users near the requester.
type GeoIndex struct {
	rdb   *redis.RedisClient
	table *geo.Table
}

func NewGeoIndex(rdb *redis.RedisClient, table *geo.Table) *GeoIndex {
	return &GeoIndex{rdb: rdb, table: table}
}

func (g *GeoIndex) Index(ctx context.Context, userID uint, location int) error {
	p, err := g.table.Coordinates(location)
	if err != nil {
		// 좌표가 없는 유저는 어차피 후보가 될 수 없다
		_ = g.rdb.RemoveUserLocation(ctx, userID)
		return err
	}
	return g.rdb.IndexUserLocation(ctx, userID, p.Lat, p.Lon)
}

// Nearby over-approximates the radius; callers still apply the exact rule.
func (g *GeoIndex) Nearby(ctx context.Context, location, radius int) ([]uint, error) {
	p, err := g.table.Coordinates(location)
	if err != nil {
		return nil, err
	}
	return g.rdb.NearbyUserIDs(ctx, p.Lat, p.Lon, searchRadius(radius))
}

// redis uses a slightly larger earth radius than geo.EarthRadiusMiles
func searchRadius(radius int) float64 {
	return float64(radius)*1.01 + 1
}
