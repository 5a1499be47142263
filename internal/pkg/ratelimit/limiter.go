package ratelimit

import (
	"sync"
	"time"
)

// Limiter 进程内滑动窗口限流器。计数仅存内存，重启即丢失，
// 只用于软性防刷，不承担安全边界。
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window

	// now 可注入时钟，便于测试
	now func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

func New() *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow 检查 key 在 windowSize 内是否还有配额。
// 窗口过期则重置为 1 并放行；未满则自增放行；已满拒绝且无任何副作用。
func (l *Limiter) Allow(key string, max int, windowSize time.Duration) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(windowSize)}
		return true
	}

	if w.count < max {
		w.count++
		return true
	}
	return false
}

// Purge 清理已过期的窗口记录，由定时任务调用
func (l *Limiter) Purge() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}
