package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"gorm.io/gorm"
)

type PlaceOrderInput struct {
	DeliveryAddress     string `json:"deliveryAddress"`
	PaymentMethod       string `json:"paymentMethod"`
	SpecialInstructions string `json:"specialInstructions"`
	// RequestID makes a retried checkout return the order it already created.
	RequestID string `json:"requestId"`
}

type OrderService struct {
	DB     *gorm.DB
	Orders *repository.OrderRepository
	Cart   *CartService
}

func NewOrderService(db *gorm.DB, orders *repository.OrderRepository, cart *CartService) *OrderService {
	return &OrderService{DB: db, Orders: orders, Cart: cart}
}

// PlaceOrder snapshots the user's cart into a new order and empties the cart,
// both in one transaction. Lines are frozen at current prices; the order total
// is the cart total as of its last mutation.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, in PlaceOrderInput) (*models.Order, error) {
	in.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.SpecialInstructions = strings.TrimSpace(in.SpecialInstructions)
	if in.DeliveryAddress == "" {
		return nil, validationErr("deliveryAddress is required")
	}
	if in.PaymentMethod == "" {
		return nil, validationErr("paymentMethod is required")
	}
	var requestID *string
	if raw := strings.TrimSpace(in.RequestID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, validationErr("requestId must be a UUID")
		}
		canonical := id.String()
		requestID = &canonical
	}

	unlock := s.Cart.locks.Lock(userID)
	defer unlock()

	var order *models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.Orders.WithTx(tx)
		menus := s.Cart.Menus.WithTx(tx)

		if requestID != nil {
			existing, err := orders.FindByRequestID(ctx, userID, *requestID)
			if err == nil {
				order = existing
				return attachOrderItems(ctx, menus, existing)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return storageErr("find order by request id", err)
			}
		}

		cart, err := s.Cart.load(ctx, tx, userID)
		if errors.Is(err, ErrCartNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		if _, err := resolveLines(ctx, menus, cart); err != nil {
			return err
		}
		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			if line.MenuItem == nil {
				continue
			}
			items = append(items, models.OrderItem{
				MenuItemID: line.MenuItemID,
				MenuItem:   line.MenuItem,
				Name:       line.MenuItem.Name,
				Quantity:   line.Quantity,
				Price:      line.MenuItem.Price,
			})
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		order = &models.Order{
			UserID:              userID,
			RequestID:           requestID,
			Items:               items,
			TotalAmount:         cart.TotalAmount,
			DeliveryAddress:     in.DeliveryAddress,
			PaymentMethod:       in.PaymentMethod,
			SpecialInstructions: in.SpecialInstructions,
		}
		if err := orders.Create(ctx, order); err != nil {
			return storageErr("create order", err)
		}

		cart.Items = []models.CartLine{}
		cart.TotalAmount = decimal.Zero
		if err := s.Cart.Carts.WithTx(tx).Save(ctx, cart); err != nil {
			return storageErr("clear cart", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns the user's orders newest first, with each item's menu
// item attached when it still exists.
func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.Orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageErr("list orders", err)
	}

	seen := make(map[uint]struct{})
	var ids []uint
	for i := range orders {
		for _, id := range orders[i].MenuItemIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	menuItems, err := s.Cart.Menus.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storageErr("resolve menu items", err)
	}
	for i := range orders {
		for j := range orders[i].Items {
			orders[i].Items[j].MenuItem = menuItems[orders[i].Items[j].MenuItemID]
		}
	}
	return orders, nil
}

func attachOrderItems(ctx context.Context, menus *repository.MenuRepository, order *models.Order) error {
	menuItems, err := menus.FindByIDs(ctx, order.MenuItemIDs())
	if err != nil {
		return storageErr("resolve menu items", err)
	}
	for i := range order.Items {
		order.Items[i].MenuItem = menuItems[order.Items[i].MenuItemID]
	}
	return nil
}
