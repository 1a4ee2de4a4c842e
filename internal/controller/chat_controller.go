package controller

import (
	"ai-ragchat-be/internal/dto"
	"ai-ragchat-be/internal/pkg/serverutils"
	"ai-ragchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Send(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/chat/v1")
	h.Use(auth)
	h.Post(":sessionId", c.Send)
	h.Get(":sessionId/history", c.History)
	h.Delete(":sessionId", c.Clear)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("sessionId"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	res, err := c.chatService.History(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("sessionId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	if err := c.chatService.Clear(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("sessionId")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear chat session", nil))
}
