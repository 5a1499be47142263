package handler

import (
	log "log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/pkg/notifier"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

// wsSink 把 websocket 连接包装成通知订阅方，写锁保证并发推送安全
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSink) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

type WsHandler struct {
	hub      *notifier.Hub
	layerSvc service.LayerService
}

func NewWsHandler(hub *notifier.Hub, layerSvc service.LayerService) *WsHandler {
	return &WsHandler{hub: hub, layerSvc: layerSvc}
}

// Connect 升级 websocket 并进入 join_layer 消息循环。
// 一个连接同一时刻只观察一个图层，重复 join 会切换订阅。
func (s *WsHandler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS upgrade failed", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	sink := &wsSink{conn: conn}
	defer s.hub.Leave(sink)

	ctx := c.Request.Context()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req dto.JoinLayerReq
		if err := json.Unmarshal(raw, &req); err != nil {
			continue
		}
		if req.Type != dto.WsTypeJoinLayer || req.LayerID == "" {
			continue
		}

		if _, err := s.layerSvc.GetLayer(ctx, req.LayerID); err != nil {
			log.WarnContext(ctx, "WS join rejected", "layer_id", req.LayerID, "err", err)
			continue
		}

		s.hub.Join(sink, req.LayerID)

		joined, err := json.Marshal(&dto.JoinedEvent{
			Type:     dto.WsTypeJoined,
			LayerID:  req.LayerID,
			Watchers: s.hub.Watchers(req.LayerID),
		})
		if err != nil {
			continue
		}
		if err := sink.Send(joined); err != nil {
			return
		}
	}
}
