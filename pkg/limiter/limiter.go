// Package limiter keeps token buckets keyed by route or by client.
package limiter

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 令牌桶规则
type BucketRule struct {
	Key          string        // 规则键
	FillInterval time.Duration // 放入令牌的间隔
	Capacity     int64         // 桶容量
	Quantum      int64         // 每次放入的令牌数
}

type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*ratelimit.Bucket
}

func (l *Limiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.buckets[key]
	return b, ok
}

func (l *Limiter) addBuckets(rules ...BucketRule) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.buckets == nil {
		l.buckets = make(map[string]*ratelimit.Bucket)
	}
	for _, r := range rules {
		if _, ok := l.buckets[r.Key]; ok {
			continue
		}
		quantum := r.Quantum
		if quantum <= 0 {
			quantum = 1
		}
		l.buckets[r.Key] = ratelimit.NewBucketWithQuantum(r.FillInterval, r.Capacity, quantum)
	}
}

// MethodLimiter keys buckets by request path without the query string
// MethodLimiter 按接口路径限流
type MethodLimiter struct {
	Limiter
}

func NewMethodLimiter() Face {
	return &MethodLimiter{}
}

func (l *MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	if i := strings.Index(uri, "?"); i >= 0 {
		return uri[:i]
	}
	return uri
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	l.addBuckets(rules...)
	return l
}

// GlobalKey is the only bucket key used by GlobalLimiter
const GlobalKey = "*"

// GlobalLimiter shares one bucket across every request
// GlobalLimiter 全局限流，所有请求共用一个令牌桶
type GlobalLimiter struct {
	Limiter
}

func NewGlobalLimiter() Face {
	return &GlobalLimiter{}
}

func (l *GlobalLimiter) Key(*gin.Context) string {
	return GlobalKey
}

func (l *GlobalLimiter) AddBuckets(rules ...BucketRule) Face {
	l.addBuckets(rules...)
	return l
}

// Wait blocks until one token is available from b or ctx is done
// Wait 等待令牌，可被 ctx 取消
func Wait(ctx context.Context, b *ratelimit.Bucket) error {
	if b == nil {
		return nil
	}
	d := b.Take(1)
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
