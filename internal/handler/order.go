package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/middleware"
	"github.com/iliyamo/shopifier/internal/queue"
	"github.com/iliyamo/shopifier/internal/repository"
	queue_publisher "github.com/iliyamo/shopifier/internal/service"
)

// OrderHandler places and lists orders on behalf of shoppers. RequireUser
// middleware runs before every method. CreateOrder is the only
// multi-statement sequence in the service and runs inside one transaction.
type OrderHandler struct {
	Orders   *repository.OrderRepo
	Products *repository.ProductRepo
}

func NewOrderHandler(o *repository.OrderRepo, p *repository.ProductRepo) *OrderHandler {
	if o == nil || p == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Orders: o, Products: p}
}

type orderItemReq struct {
	ID       uint64  `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type createOrderReq struct {
	Items           []orderItemReq `json:"items"`
	ShippingAddress string         `json:"shipping_address"`
	PaymentMethod   string         `json:"payment_method"`
}

// CreateOrder handles POST /api/orders. The total is computed from the
// client-supplied line prices; items are snapshotted into order_items and
// each product's stock is decremented by the ordered quantity. Header, items
// and decrements commit together or not at all.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID := middleware.FromContext(c).ID

	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "credit_card"
	}

	total := 0.0
	for _, it := range req.Items {
		total += it.Price * float64(it.Quantity)
	}

	ctx := c.Request().Context()
	tx, err := h.Orders.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not start order"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	order := repository.Order{
		UserID:          userID,
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	if err := h.Orders.CreateTx(ctx, tx, &order); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create order"})
	}

	items := make([]repository.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, repository.OrderItem{
			OrderID:   order.ID,
			ProductID: it.ID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	if err := h.Orders.CreateItemsBulkTx(ctx, tx, items); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create order"})
	}
	for _, it := range req.Items {
		if err := h.Products.DecrementStockTx(ctx, tx, it.ID, it.Quantity); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create order"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create order"})
	}
	committed = true

	// Best effort: a publish failure never fails the committed order.
	go func(ev queue.OrderPlacedEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishOrderPlaced(ctx, ev)
	}(queue.OrderPlacedEvent{
		OrderID:       order.ID,
		UserID:        userID,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		ItemCount:     len(req.Items),
		PlacedAt:      time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Order created successfully",
		"order_id": order.ID,
	})
}

// ListOrders handles GET /api/orders: the caller's orders newest first, each
// annotated with the concatenated titles of its products.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID := middleware.FromContext(c).ID
	orders, err := h.Orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not list orders"})
	}
	return c.JSON(http.StatusOK, orders)
}
