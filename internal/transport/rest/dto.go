package rest

import (
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// loginRequest — тело запроса POST /api/auth/login.
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginResponse — ответ на успешный вход.
type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type orderLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Qty       int32  `json:"qty"`
}

type createOrderRequest struct {
	Items []orderLineRequest `json:"items"`
}

type updateOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

type updateOrderItemRequest struct {
	Qty int32 `json:"qty"`
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceMinor  int64  `json:"price_minor"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	StockQty    int32  `json:"stock_qty"`
}

type userRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`
}

type profileRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Photo сериализуется encoding/json как base64-строка.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	Photo     []byte    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceMinor  int64     `json:"price_minor"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	StockQty    int32     `json:"stock_qty"`
	Photo       []byte    `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type orderItemResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Qty        int32     `json:"qty"`
	PriceMinor int64     `json:"price_minor"`
	CreatedAt  time.Time `json:"created_at"`
}

type orderResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	Status      string              `json:"status"`
	Currency    string              `json:"currency"`
	AmountMinor int64               `json:"amount_minor"`
	Version     int64               `json:"version"`
	Items       []orderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type timelineEventResponse struct {
	OrderID  string    `json:"order_id"`
	Type     string    `json:"type"`
	Reason   string    `json:"reason,omitempty"`
	Occurred time.Time `json:"occurred"`
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		Active:    user.Active,
		Photo:     user.Photo,
		CreatedAt: user.CreatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	result := make([]userResponse, 0, len(users))
	for _, user := range users {
		result = append(result, toUserResponse(user))
	}
	return result
}

func toProductResponse(product domain.Product) productResponse {
	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		PriceMinor:  product.PriceMinor,
		Currency:    product.Currency,
		Status:      string(product.Status),
		StockQty:    product.StockQty,
		Photo:       product.Photo,
		CreatedAt:   product.CreatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	result := make([]productResponse, 0, len(products))
	for _, product := range products {
		result = append(result, toProductResponse(product))
	}
	return result
}

func toOrderItemResponse(item domain.OrderItem) orderItemResponse {
	return orderItemResponse{
		ID:         item.ID,
		ProductID:  item.ProductID,
		Qty:        item.Qty,
		PriceMinor: item.PriceMinor,
		CreatedAt:  item.CreatedAt,
	}
}

func toOrderItemResponses(items []domain.OrderItem) []orderItemResponse {
	result := make([]orderItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toOrderItemResponse(item))
	}
	return result
}

func toOrderResponse(order domain.Order) orderResponse {
	return orderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		Status:      string(order.Status),
		Currency:    order.Currency,
		AmountMinor: order.AmountMinor,
		Version:     order.Version,
		Items:       toOrderItemResponses(order.Items),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	result := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	return result
}

func toTimelineResponses(events []domain.TimelineEvent) []timelineEventResponse {
	result := make([]timelineEventResponse, 0, len(events))
	for _, event := range events {
		result = append(result, timelineEventResponse{
			OrderID:  event.OrderID,
			Type:     event.Type,
			Reason:   event.Reason,
			Occurred: event.Occurred,
		})
	}
	return result
}
