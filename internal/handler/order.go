package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snackshop/snackshop-api/internal/dto"
	"github.com/snackshop/snackshop-api/internal/middleware"
	"github.com/snackshop/snackshop-api/internal/model"
	"github.com/snackshop/snackshop-api/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *gin.Context) {
	ident := middleware.GetIdentity(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart"})
		return
	}

	lines := make([]model.CartLine, 0, len(req.Cart))
	for _, l := range req.Cart {
		lines = append(lines, model.CartLine{ProductID: l.ID, Quantity: l.Quantity})
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), ident.UserID, lines)
	if err != nil {
		var stockErr *service.InsufficientStockError
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart"})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "product not found"})
		case errors.As(err, &stockErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CreateOrderResponse{
		Success: true,
		OrderID: order.ID,
		Total:   order.TotalPrice,
	})
}

func (h *OrderHandler) List(c *gin.Context) {
	ident := middleware.GetIdentity(c)

	orders, err := h.orderService.ListOrders(c.Request.Context(), ident != nil && ident.IsAdmin)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := make([]dto.AdminOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, dto.AdminOrderResponse{
			ID:         o.ID,
			Username:   o.Username,
			TotalPrice: o.TotalPrice,
			CreatedAt:  o.CreatedAt,
			Items:      service.SummarizeItems(o.Items),
		})
	}
	c.JSON(http.StatusOK, resp)
}
