package services

import (
	"context"
	"errors"
	"math"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"gorm.io/gorm"
)

// CartService owns cart mutation. Every mutation for a user runs under that
// user's lock and inside one transaction, and reprices the whole cart against
// the live catalog before it is persisted.
type CartService struct {
	DB    *gorm.DB
	Carts *repository.CartRepository
	Menus *repository.MenuRepository
	locks *keyedMutex
}

func NewCartService(db *gorm.DB, carts *repository.CartRepository, menus *repository.MenuRepository) *CartService {
	return &CartService{DB: db, Carts: carts, Menus: menus, locks: newKeyedMutex()}
}

// GetOrCreate returns the user's cart, creating an empty one on first access.
// The cached total is returned as stored.
func (s *CartService) GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	var cart *models.Cart
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		cart, err = s.loadOrCreate(ctx, tx, userID)
		if err != nil {
			return err
		}
		_, err = resolveLines(ctx, s.Menus.WithTx(tx), cart)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem merges quantity into the line for menuItemID, appending a new line
// if there is none.
func (s *CartService) AddItem(ctx context.Context, userID, menuItemID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if menuItemID == 0 {
		return nil, ErrInvalidID
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var cart *models.Cart
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		cart, err = s.loadOrCreate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if line := cart.Line(menuItemID); line != nil {
			if line.Quantity > math.MaxInt-quantity {
				return ErrInvalidQuantity
			}
			line.Quantity += quantity
		} else {
			cart.Items = append(cart.Items, models.CartLine{MenuItemID: menuItemID, Quantity: quantity})
		}
		return s.repriceAndSave(ctx, tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity overwrites the quantity of an existing line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, menuItemID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var cart *models.Cart
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		cart, err = s.load(ctx, tx, userID)
		if err != nil {
			return err
		}
		line := cart.Line(menuItemID)
		if line == nil {
			return ErrItemNotInCart
		}
		line.Quantity = quantity
		return s.repriceAndSave(ctx, tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the line for menuItemID. Removing a line that is not in
// the cart changes nothing and is not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, menuItemID uint) (*models.Cart, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	var cart *models.Cart
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		cart, err = s.load(ctx, tx, userID)
		if err != nil {
			return err
		}

		kept := make([]models.CartLine, 0, len(cart.Items))
		for _, line := range cart.Items {
			if line.MenuItemID != menuItemID {
				kept = append(kept, line)
			}
		}
		if len(kept) == len(cart.Items) {
			_, err = resolveLines(ctx, s.Menus.WithTx(tx), cart)
			return err
		}
		cart.Items = kept
		return s.repriceAndSave(ctx, tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) load(ctx context.Context, tx *gorm.DB, userID uint) (*models.Cart, error) {
	cart, err := s.Carts.WithTx(tx).FindByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, storageErr("load cart", err)
	}
	return cart, nil
}

func (s *CartService) loadOrCreate(ctx context.Context, tx *gorm.DB, userID uint) (*models.Cart, error) {
	cart, err := s.load(ctx, tx, userID)
	if !errors.Is(err, ErrCartNotFound) {
		return cart, err
	}
	cart = &models.Cart{UserID: userID, Items: []models.CartLine{}, TotalAmount: decimal.Zero}
	if err := s.Carts.WithTx(tx).Create(ctx, cart); err != nil {
		return nil, storageErr("create cart", err)
	}
	return cart, nil
}

func (s *CartService) repriceAndSave(ctx context.Context, tx *gorm.DB, cart *models.Cart) error {
	total, err := resolveLines(ctx, s.Menus.WithTx(tx), cart)
	if err != nil {
		return err
	}
	cart.TotalAmount = total
	if err := s.Carts.WithTx(tx).Save(ctx, cart); err != nil {
		return storageErr("save cart", err)
	}
	return nil
}

// resolveLines attaches the current menu item to every line and returns the
// cart total at current prices. A line whose item no longer exists is left
// unresolved and contributes zero.
func resolveLines(ctx context.Context, menus *repository.MenuRepository, cart *models.Cart) (decimal.Decimal, error) {
	items, err := menus.FindByIDs(ctx, cart.MenuItemIDs())
	if err != nil {
		return decimal.Zero, storageErr("resolve menu items", err)
	}

	lines := cart.Items
	total := decimal.Zero
	for i := range lines {
		item, ok := items[lines[i].MenuItemID]
		if !ok {
			lines[i].MenuItem = nil
			continue
		}
		lines[i].MenuItem = item
		total = total.Add(item.LineTotal(lines[i].Quantity))
	}
	return total, nil
}
