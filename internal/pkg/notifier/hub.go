package notifier

import (
	log "log/slog"
	"sync"

	"github.com/goccy/go-json"
)

// Sink 是订阅方的发送能力抽象，与具体传输（websocket 等）解耦
type Sink interface {
	Send(payload []byte) error
}

// Hub 维护 区域key -> 订阅者集合 的注册表。
// 每个 Sink 同一时刻只属于一个区域；推送尽力而为，发送失败的订阅者
// 在下一次尝试发送时被惰性清除。注册表为进程内状态，不承载资金事实。
type Hub struct {
	mu      sync.Mutex
	regions map[string]map[Sink]struct{}
	members map[Sink]string
}

func NewHub() *Hub {
	return &Hub{
		regions: make(map[string]map[Sink]struct{}),
		members: make(map[Sink]string),
	}
}

// Join 将订阅者加入指定区域，并退出其之前所在的区域
func (h *Hub) Join(s Sink, region string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(s)

	set, ok := h.regions[region]
	if !ok {
		set = make(map[Sink]struct{})
		h.regions[region] = set
	}
	set[s] = struct{}{}
	h.members[s] = region
}

// Leave 移除订阅者；区域集合变空时整体删除，不留空集合
func (h *Hub) Leave(s Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(s)
}

func (h *Hub) removeLocked(s Sink) {
	region, ok := h.members[s]
	if !ok {
		return
	}
	delete(h.members, s)

	set := h.regions[region]
	delete(set, s)
	if len(set) == 0 {
		delete(h.regions, region)
	}
}

// Publish 将事件序列化后推送给区域内所有订阅者。
// 发送失败不视为错误，只把失效的订阅者从注册表清除。
func (h *Hub) Publish(region string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error("notifier marshal event failed", "region", region, "err", err)
		return
	}

	h.mu.Lock()
	set := h.regions[region]
	sinks := make([]Sink, 0, len(set))
	for s := range set {
		sinks = append(sinks, s)
	}
	h.mu.Unlock()

	var dead []Sink
	for _, s := range sinks {
		if err := s.Send(payload); err != nil {
			dead = append(dead, s)
		}
	}

	for _, s := range dead {
		h.Leave(s)
	}
}

// Watchers 返回区域当前的订阅者数量
func (h *Hub) Watchers(region string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.regions[region])
}
