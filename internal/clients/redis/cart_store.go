package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/tilemart/storefront-backend/internal/domain"
	"github.com/tilemart/storefront-backend/internal/pkg/logger"
)

// CartStore persists session carts in redis so they survive process
// restarts. Only the line items are stored; the UI visibility flag is
// excluded from serialization.
type CartStore struct {
	log       *logger.Logger
	rdb       *goredis.Client
	namespace string
}

func NewCartStore(log *logger.Logger) (*CartStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ns := strings.TrimSpace(os.Getenv("CART_NAMESPACE"))
	if ns == "" {
		ns = "storefront:cart"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &CartStore{
		log:       log.With("service", "RedisCartStore"),
		rdb:       rdb,
		namespace: ns,
	}, nil
}

func (s *CartStore) key(sessionID uuid.UUID) string {
	return s.namespace + ":" + sessionID.String()
}

// Load returns the persisted cart for the session, or an empty cart when the
// session has none yet.
func (s *CartStore) Load(ctx context.Context, sessionID uuid.UUID) (*types.Cart, error) {
	raw, err := s.rdb.Get(ctx, s.key(sessionID)).Bytes()
	if err == goredis.Nil {
		return &types.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart types.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		s.log.Warn("Discarding unreadable cart payload", "session_id", sessionID.String(), "error", err)
		return &types.Cart{}, nil
	}
	return &cart, nil
}

func (s *CartStore) Save(ctx context.Context, sessionID uuid.UUID, cart *types.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(sessionID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (s *CartStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.rdb.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}

func (s *CartStore) Close() error {
	return s.rdb.Close()
}
