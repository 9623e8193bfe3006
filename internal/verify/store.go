package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	radix "github.com/mediocregopher/radix/v3"
)

const markerKey = "payment:verified:%s" // intentID

// Store 记录"验签已通过"的支付，下单前必须能在这里查到对应记录。
// 标记带 TTL，过期后需要重新走验签。
type Store struct {
	redis radix.Client
	ttl   time.Duration
}

// NewStore 创建验签标记存储
func NewStore(client radix.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{redis: client, ttl: ttl}
}

// Mark 写入验签通过标记：intentID -> paymentID
func (s *Store) Mark(ctx context.Context, intentID, paymentID string) error {
	if s.redis == nil {
		return errors.New("verify store: redis not initialized")
	}
	key := fmt.Sprintf(markerKey, intentID)
	return s.redis.Do(radix.FlatCmd(nil, "SETEX", key, int64(s.ttl/time.Second), paymentID))
}

// Verified 返回 intentID 对应的已验证 paymentID，未验证或已过期时为空串
func (s *Store) Verified(ctx context.Context, intentID string) (string, error) {
	if s.redis == nil {
		return "", errors.New("verify store: redis not initialized")
	}
	key := fmt.Sprintf(markerKey, intentID)
	var paymentID string
	if err := s.redis.Do(radix.Cmd(&paymentID, "GET", key)); err != nil {
		return "", err
	}
	return paymentID, nil
}
