package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	radix "github.com/mediocregopher/radix/v3"
)

// cachedSession 缓存的会话快照，只存鉴权中间件实际需要的字段
type cachedSession struct {
	UserID   int64  `json:"uid"`
	Username string `json:"uname"`
}

// SessionCache 把 JWT 解析结果缓存在 Redis，热点用户免重复验签。
// 键经一致性哈希环分配节点前缀，便于多实例部署时分片
type SessionCache struct {
	redis radix.Client
	ring  *Ring
	ttl   time.Duration
}

// NewSessionCache 构建会话缓存
func NewSessionCache(redis radix.Client, ring *Ring, ttl time.Duration) *SessionCache {
	if ring == nil {
		ring = NewRing(nil, 0)
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SessionCache{
		redis: redis,
		ring:  ring,
		ttl:   ttl,
	}
}

// cacheKey 令牌摘要取前 16 字节，键短且不落原始令牌
func (c *SessionCache) cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("shop:session:%s:%s", c.ring.Pick(token), hex.EncodeToString(sum[:16]))
}

// Get 尝试命中缓存的会话
func (c *SessionCache) Get(ctx context.Context, token string) (*Claims, bool, error) {
	if c.redis == nil {
		return nil, false, nil
	}
	key := c.cacheKey(token)
	var raw string
	if err := c.redis.Do(radix.Cmd(&raw, "GET", key)); err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}
	var s cachedSession
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		// 数据损坏，清理后走正常解析
		_ = c.redis.Do(radix.Cmd(nil, "DEL", key))
		return nil, false, nil
	}
	return &Claims{UserID: s.UserID, Username: s.Username}, true, nil
}

// Set 缓存解析结果
func (c *SessionCache) Set(ctx context.Context, token string, claims *Claims) error {
	if c.redis == nil || claims == nil {
		return nil
	}
	body, _ := json.Marshal(cachedSession{UserID: claims.UserID, Username: claims.Username})
	return c.redis.Do(radix.FlatCmd(nil, "SETEX", c.cacheKey(token), int64(c.ttl/time.Second), body))
}
