package controller

import (
	"ai-ragchat-be/internal/dto"
	"ai-ragchat-be/internal/pkg/serverutils"
	"ai-ragchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/document/v1")
	h.Use(auth)
	h.Post("", c.Create)
}

func (c *documentController) Create(ctx *fiber.Ctx) error {
	var req dto.IndexDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Queue(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	resp := serverutils.SuccessResponse("Document queued for indexing", res)
	resp.Code = fiber.StatusAccepted
	return ctx.Status(fiber.StatusAccepted).JSON(resp)
}
