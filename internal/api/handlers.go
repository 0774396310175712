package api

import (
	"billing/internal/service"
	"billing/pkg"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Handlers struct {
	BillingService service.BillingService
	Logger         pkg.Logger
}

var _ ServerInterface = (*Handlers)(nil)

type ServerInterface interface {
	GetApiUsers(ctx echo.Context) error
	PostApiEmission(ctx echo.Context) error
	PostApiMoveCoins(ctx echo.Context) error
	GetApiLongestHistoryCoin(ctx echo.Context) error
}

func RegisterHandlers(e *echo.Echo, h ServerInterface) {
	e.GET("/api/users", h.GetApiUsers)
	e.POST("/api/emission", h.PostApiEmission)
	e.POST("/api/move-coins", h.PostApiMoveCoins)
	e.GET("/api/longest-history-coin", h.GetApiLongestHistoryCoin)
}

func (h *Handlers) GetApiUsers(ctx echo.Context) error {
	users := h.BillingService.ListUsers()
	profiles := make([]UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, UserProfile{Name: u.Name, Balance: u.Balance})
	}
	return ctx.JSON(http.StatusOK, profiles)
}

func (h *Handlers) PostApiEmission(ctx echo.Context) error {
	var req EmissionRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Response{Status: StatusFailed, Comment: "Invalid request body"})
	}

	if err := h.BillingService.CoinsEmission(req.Amount); err != nil {
		if errors.Is(err, service.ErrNotEnoughCoins) {
			return ctx.JSON(http.StatusBadRequest, Response{Status: StatusFailed, Comment: "Not enough coins"})
		}
		h.Logger.Error("failed to emit coins", zap.Int64("amount", req.Amount), zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, Response{Status: StatusFailed, Comment: "Internal server error"})
	}

	return ctx.JSON(http.StatusOK, Response{Status: StatusOK, Comment: "Coins are distributed"})
}

func (h *Handlers) PostApiMoveCoins(ctx echo.Context) error {
	var req MoveCoinsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Response{Status: StatusFailed, Comment: "Invalid request body"})
	}

	if err := h.BillingService.MoveCoins(req.SrcUser, req.DstUser, req.Amount); err != nil {
		switch {
		case errors.Is(err, service.ErrSrcUserNotFound):
			return ctx.JSON(http.StatusBadRequest, Response{Status: StatusFailed, Comment: "srcUser not found"})
		case errors.Is(err, service.ErrDstUserNotFound):
			return ctx.JSON(http.StatusBadRequest, Response{Status: StatusFailed, Comment: "dstUser not found"})
		case errors.Is(err, service.ErrNegativeAmount):
			return ctx.JSON(http.StatusBadRequest, Response{Status: StatusFailed, Comment: "Money less zero"})
		case errors.Is(err, service.ErrInsufficientBalance):
			return ctx.JSON(http.StatusBadRequest, Response{Status: StatusFailed, Comment: "srcUser does not have enough money"})
		}
		h.Logger.Error("failed to move coins",
			zap.String("srcUser", req.SrcUser),
			zap.String("dstUser", req.DstUser),
			zap.Int64("amount", req.Amount),
			zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, Response{Status: StatusFailed, Comment: "Internal server error"})
	}

	return ctx.JSON(http.StatusOK, Response{Status: StatusOK, Comment: "money is moved"})
}

func (h *Handlers) GetApiLongestHistoryCoin(ctx echo.Context) error {
	coin, err := h.BillingService.LongestHistoryCoin()
	if err != nil {
		if errors.Is(err, service.ErrEmptyLedger) {
			return ctx.JSON(http.StatusNotFound, Response{Status: StatusFailed, Comment: "No coins emitted yet"})
		}
		h.Logger.Error("failed to query longest history coin", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, Response{Status: StatusFailed, Comment: "Internal server error"})
	}
	return ctx.JSON(http.StatusOK, CoinResponse{ID: coin.ID, History: coin.History})
}
