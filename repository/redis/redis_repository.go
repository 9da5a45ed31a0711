package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	redisclient "github.com/andikapratama/stockledger/cmd/redis"
	"github.com/andikapratama/stockledger/model"
)

const availabilityTTL = 5 * time.Minute

// Repository caches per-item availability snapshots. Every committed movement
// invalidates the item's key; a nil or unreachable client degrades to cache misses.
type Repository interface {
	GetItemAvailability(ctx context.Context, itemID uint64) (*model.ItemAvailability, error)
	SetItemAvailability(ctx context.Context, avail *model.ItemAvailability) error
	InvalidateItemAvailability(ctx context.Context, itemID uint64) error
}

type redis struct{}

// NewRepository returns a Redis Repository implementation backed by the shared client.
func NewRepository() Repository {
	return &redis{}
}

func availabilityKey(itemID uint64) string {
	return fmt.Sprintf("item_availability:%d", itemID)
}

func (r *redis) GetItemAvailability(ctx context.Context, itemID uint64) (*model.ItemAvailability, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, nil
	}
	val, err := client.Get(ctx, availabilityKey(itemID)).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var avail model.ItemAvailability
	if err := json.Unmarshal([]byte(val), &avail); err != nil {
		return nil, err
	}
	return &avail, nil
}

func (r *redis) SetItemAvailability(ctx context.Context, avail *model.ItemAvailability) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(avail)
	if err != nil {
		return err
	}
	return client.Set(ctx, availabilityKey(avail.ItemID), raw, availabilityTTL).Err()
}

func (r *redis) InvalidateItemAvailability(ctx context.Context, itemID uint64) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, availabilityKey(itemID)).Err()
}
