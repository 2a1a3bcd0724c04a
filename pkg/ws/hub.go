package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MsgTypeInit 初始化数据（行程汇总+预算状态）
const MsgTypeInit = "init"

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// Message WebSocket 消息结构
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// userMessage 发给某个用户的消息
type userMessage struct {
	userID string
	data   []byte
}

// Client WebSocket 客户端，每个连接属于一个用户
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

// Hub WebSocket 连接管理中心
type Hub struct {
	logger     *zap.Logger
	clients    map[string]map[*Client]bool
	direct     chan userMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex

	// 初始数据提供者回调
	getInitData func(userID string) interface{}
}

// NewHub 创建 Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[string]map[*Client]bool),
		direct:     make(chan userMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// SetInitDataProvider 设置初始数据提供者
func (h *Hub) SetInitDataProvider(provider func(userID string) interface{}) {
	h.getInitData = provider
}

// Run 运行 Hub，直到 Stop 被调用
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			total := h.countLocked()
			h.mu.Unlock()
			h.logger.Info("WebSocket client connected",
				zap.String("user_id", client.userID),
				zap.Int("total_clients", total))

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			total := h.countLocked()
			h.mu.Unlock()
			h.logger.Info("WebSocket client disconnected",
				zap.String("user_id", client.userID),
				zap.Int("total_clients", total))

		case msg := <-h.direct:
			h.mu.Lock()
			for client := range h.clients[msg.userID] {
				select {
				case client.send <- msg.data:
				default:
					// 慢消费者，关闭连接
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for _, set := range h.clients {
				for client := range set {
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop 停止 Hub 并关闭所有客户端的发送队列
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) removeLocked(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; ok {
		delete(set, client)
		close(client.send)
	}
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// queueInitData 在注册前把初始数据放入客户端发送队列
// 提供者可能访问数据库，因此在调用方协程中执行，不阻塞 Run
func (h *Hub) queueInitData(client *Client) {
	if h.getInitData == nil {
		return
	}

	initData := h.getInitData(client.userID)
	if initData == nil {
		h.logger.Warn("Init data provider returned nil", zap.String("user_id", client.userID))
		return
	}

	data, err := json.Marshal(Message{Type: MsgTypeInit, Data: initData})
	if err != nil {
		h.logger.Error("Failed to marshal init data", zap.Error(err))
		return
	}

	select {
	case client.send <- data:
		h.logger.Debug("Sent init data to client", zap.String("user_id", client.userID))
	default:
		h.logger.Warn("Failed to send init data, client buffer full", zap.String("user_id", client.userID))
	}
}

// SendToUser 向用户的所有连接推送结构化消息
func (h *Hub) SendToUser(userID, msgType string, data interface{}) {
	jsonData, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("Failed to marshal message", zap.String("type", msgType), zap.Error(err))
		return
	}

	select {
	case h.direct <- userMessage{userID: userID, data: jsonData}:
	case <-h.done:
	}
}

// ClientCount 获取客户端数量
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.countLocked()
}

// UserClientCount 获取某个用户的连接数
func (h *Hub) UserClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// NewClient 创建客户端
func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBuffer),
	}
}

// Register 准备初始数据并注册客户端
func (c *Client) Register() {
	c.hub.queueInitData(c)

	select {
	case c.hub.register <- c:
	case <-c.hub.done:
	}
}

// Unregister 注销客户端
func (c *Client) Unregister() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// ReadPump 读取消息（保持连接活跃）
func (c *Client) ReadPump() {
	defer func() {
		c.Unregister()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
		// 客户端消息不做处理，仅保持连接
	}
}

// WritePump 发送消息并定期 ping
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
