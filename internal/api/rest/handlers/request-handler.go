package handlers

import (
	"errors"

	"github.com/SundayYogurt/approval_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/approval_service/internal/domain"
	"github.com/SundayYogurt/approval_service/internal/dto"
	"github.com/SundayYogurt/approval_service/internal/helper"
	"github.com/SundayYogurt/approval_service/internal/helper/utils"
	"github.com/SundayYogurt/approval_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	svc  services.RequestService
	auth helper.Auth
}

func NewRequestHandler(svc services.RequestService, auth helper.Auth) *RequestHandler {
	return &RequestHandler{svc: svc, auth: auth}
}

func (h *RequestHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	req := api.Group("/requests", middleware.AuthMiddleware(h.auth))

	req.Post("/", h.Create)
	req.Post("/filter", h.FindAll)
	req.Get("/:id", h.GetByID)
	req.Get("/:id/history", h.GetHistory)

	// edit route must be registered before the status route so
	// PUT /update/:id is not captured by /:id
	req.Put("/update/:id", h.Update)
	req.Put("/:id", middleware.ApproverOnly(h.auth), h.UpdateStatus)
}

func (h *RequestHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.CreateRequestInput

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	// requester defaults to the caller
	if requestBody.RequesterID == "" {
		requestBody.RequesterID = claims.UserID
	}

	request, err := h.svc.Create(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, statusFromErr(err), err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, request)
}

func (h *RequestHandler) FindAll(ctx *fiber.Ctx) error {
	var requestBody dto.FilterRequestsBody

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := h.svc.FindAllWithFilters(requestBody.Page, requestBody.Limit, requestBody.RequestFilters, claims)
	if err != nil {
		return utils.ResponseError(ctx, statusFromErr(err), err.Error())
	}

	return ctx.Status(fiber.StatusOK).JSON(result)
}

func (h *RequestHandler) GetByID(ctx *fiber.Ctx) error {
	request, err := h.svc.FindByID(ctx.Params("id"))
	if err != nil {
		return utils.ResponseError(ctx, statusFromErr(err), err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, request)
}

func (h *RequestHandler) GetHistory(ctx *fiber.Ctx) error {
	entries, err := h.svc.ListHistory(ctx.Params("id"))
	if err != nil {
		return utils.ResponseError(ctx, statusFromErr(err), err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, entries)
}

func (h *RequestHandler) UpdateStatus(ctx *fiber.Ctx) error {
	var requestBody dto.UpdateStatusRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Status == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	request, err := h.svc.UpdateStatus(ctx.Params("id"), requestBody.Status, claims.UserID, requestBody.Comment)
	if err != nil {
		return utils.ResponseError(ctx, statusFromErr(err), err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, request)
}

func (h *RequestHandler) Update(ctx *fiber.Ctx) error {
	var requestBody dto.UpdateRequestInput

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	request, err := h.svc.Update(ctx.Params("id"), requestBody, claims.UserID)
	if err != nil {
		return utils.ResponseError(ctx, statusFromErr(err), err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, request)
}

// statusFromErr maps domain error kinds onto HTTP status codes; anything
// unrecognized surfaces as an opaque server failure.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrApproverNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrOnlyRejectedEditable),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidRole):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}
