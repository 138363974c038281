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

type UserHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewUserHandler(svc services.UserService, auth helper.Auth) *UserHandler {
	return &UserHandler{svc: svc, auth: auth}
}

func (h *UserHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	user := api.Group("/users")

	// Auth
	user.Post("/register", h.Register)
	user.Post("/login", h.Login)

	// Directory
	user.Get("/approvers", middleware.AuthMiddleware(h.auth), h.GetApprovers)
	user.Get("/:userID", middleware.AuthMiddleware(h.auth), h.GetByID)
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if requestBody.Username == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Register(requestBody)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRole) {
			return utils.ResponseError(ctx, fiber.StatusUnprocessableEntity, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "username and password are required")
	}

	resp, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Invalid username or password")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *UserHandler) GetApprovers(ctx *fiber.Ctx) error {
	approvers, err := h.svc.FindApprovers()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, approvers)
}

func (h *UserHandler) GetByID(ctx *fiber.Ctx) error {
	user, err := h.svc.FindByID(ctx.Params("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
}
