package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering/database"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/utils"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	catalog *CatalogService
	cart    *CartService
	orders  *OrderService
	auth    *AuthService
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	menus := repository.NewMenuRepository(db)
	cart := NewCartService(db, repository.NewCartRepository(db), menus)
	return &fixture{
		db:      db,
		catalog: NewCatalogService(menus),
		cart:    cart,
		orders:  NewOrderService(db, repository.NewOrderRepository(db), cart),
		auth:    NewAuthService(db, repository.NewUserRepository(db), utils.NewTokenIssuer("test-secret", time.Hour)),
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func menuInput(name, price string) MenuItemInput {
	return MenuItemInput{
		Name:            strPtr(name),
		Description:     strPtr(name + " description"),
		Price:           decPtr(price),
		Image:           strPtr("https://img.example/" + name + ".jpg"),
		Category:        strPtr("main"),
		PreparationTime: intPtr(15),
	}
}

func (f *fixture) seedItem(t *testing.T, name, price string) *models.MenuItem {
	t.Helper()
	item, err := f.catalog.Create(context.Background(), menuInput(name, price))
	require.NoError(t, err)
	return item
}

func (f *fixture) setPrice(t *testing.T, item *models.MenuItem, price string) {
	t.Helper()
	_, err := f.catalog.Update(context.Background(), idString(item.ID), MenuItemInput{Price: decPtr(price)})
	require.NoError(t, err)
}

func (f *fixture) deleteItem(t *testing.T, item *models.MenuItem) {
	t.Helper()
	_, err := f.catalog.Delete(context.Background(), idString(item.ID))
	require.NoError(t, err)
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
