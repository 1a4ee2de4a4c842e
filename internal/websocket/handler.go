package websocket

import (
	"context"
	"encoding/json"

	"ai-ragchat-be/internal/dto"
	"ai-ragchat-be/internal/pkg/logger"
	"ai-ragchat-be/internal/pkg/serverutils"
	"ai-ragchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatHandler serves the chat protocol over /ws/chat.
type ChatHandler struct {
	hub         *Hub
	chatService service.IChatService
	jwtSecret   string
	logger      logger.ILogger
}

func NewChatHandler(hub *Hub, chatService service.IChatService, jwtSecret string, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		hub:         hub,
		chatService: chatService,
		jwtSecret:   jwtSecret,
		logger:      log,
	}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	r.Use("/ws", h.upgrade)
	r.Get("/ws/chat", websocket.New(h.serve))
}

// upgrade rejects plain HTTP and, when auth is on, checks ?token= since
// browsers cannot set headers on the handshake.
func (h *ChatHandler) upgrade(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	if h.jwtSecret != "" {
		userID, err := serverutils.ParseUserID(h.jwtSecret, ctx.Query("token"))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		ctx.Locals("user_id", userID)
	}
	return ctx.Next()
}

func (h *ChatHandler) serve(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := &Client{
		Hub:    h.hub,
		Conn:   conn,
		UserID: userID,
		Send:   make(chan []byte, 256),
		logger: h.logger,
	}
	h.hub.register <- client

	// Turns still running when the peer leaves are cancelled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.writePump()
	client.readPump(func(c *Client, data []byte) {
		h.handleFrame(ctx, c, data)
	})
}

func (h *ChatHandler) handleFrame(ctx context.Context, c *Client, data []byte) {
	var req dto.WsChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.reply(c, dto.WsChatResponse{Type: dto.WsTypeError, Error: "invalid frame"})
		return
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		h.reply(c, dto.WsChatResponse{Type: dto.WsTypeError, SessionId: req.SessionId, Error: err.Error()})
		return
	}

	if req.Type == dto.WsTypeWatch {
		h.hub.Watch(c, service.SessionKey(c.UserID, req.SessionId), req.SessionId)
		return
	}

	go func() {
		res, err := h.chatService.Chat(ctx, c.UserID, req.SessionId, &dto.ChatRequest{Input: req.Input})
		if err != nil {
			_, message := serverutils.StatusFor(err)
			h.reply(c, dto.WsChatResponse{Type: dto.WsTypeError, SessionId: req.SessionId, Error: message})
			return
		}
		h.reply(c, dto.WsChatResponse{
			Type:      dto.WsTypeReply,
			SessionId: req.SessionId,
			Reply:     res.Reply,
			Question:  res.Question,
		})
	}()
}

func (h *ChatHandler) reply(c *Client, frame dto.WsChatResponse) {
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	h.hub.SendTo(c, data)
}
