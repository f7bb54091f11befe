package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/order"
)

func (s *Server) listOrders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	orders, err := s.orders.List(actorFrom(c), limit)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (s *Server) getOrder(c *gin.Context) {
	found, err := s.orders.Get(actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(found))
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	lines := make([]order.Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, order.Line{ProductID: item.ProductID, Qty: item.Qty})
	}

	created, err := s.orders.Create(actorFrom(c), lines)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(created))
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "status is required"})
		return
	}

	updated, err := s.orders.UpdateStatus(c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(updated))
}

func (s *Server) deleteOrder(c *gin.Context) {
	if err := s.orders.Delete(c.Param("id")); err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getOrderTimeline(c *gin.Context) {
	events, err := s.orders.Timeline(actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toTimelineResponses(events))
}

func (s *Server) listOrderItems(c *gin.Context) {
	items, err := s.orders.ListItems()
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderItemResponses(items))
}

func (s *Server) getOrderItem(c *gin.Context) {
	item, err := s.orders.GetItem(c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderItemResponse(item))
}

// updateOrderItem меняет количество позиции; в ответ уходит родительский
// заказ с пересчитанной суммой.
func (s *Server) updateOrderItem(c *gin.Context) {
	var req updateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	updated, err := s.orders.UpdateItemQuantity(c.Param("id"), req.Qty)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(updated))
}

func (s *Server) deleteOrderItem(c *gin.Context) {
	updated, err := s.orders.DeleteItem(c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(updated))
}
