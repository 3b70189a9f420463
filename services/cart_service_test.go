package services

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/food-ordering/models"
)

func TestGetOrCreateIsLazyAndStable(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	first, err := f.cart.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Empty(t, first.Items)
	assert.True(t, first.TotalAmount.IsZero())

	second, err := f.cart.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, f.db.Model(&models.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	pizza := f.seedItem(t, "Pizza", "10")
	soda := f.seedItem(t, "Soda", "2.50")

	_, err := f.cart.AddItem(ctx, 1, pizza.ID, 2)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, 1, soda.ID, 1)
	require.NoError(t, err)
	cart, err := f.cart.AddItem(ctx, 1, pizza.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, pizza.ID, cart.Items[0].MenuItemID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, soda.ID, cart.Items[1].MenuItemID)
	assert.True(t, cart.TotalAmount.Equal(dec("52.5")), cart.TotalAmount.String())
	require.NotNil(t, cart.Items[0].MenuItem)
	assert.Equal(t, "Pizza", cart.Items[0].MenuItem.Name)

	stored, err := f.cart.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(dec("52.5")))
	assert.Equal(t, 5, stored.Line(pizza.ID).Quantity)
}

func TestMutationRepricesAgainstCurrentCatalog(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	steak := f.seedItem(t, "Steak", "200")
	fries := f.seedItem(t, "Fries", "50")

	cart, err := f.cart.AddItem(ctx, 1, steak.ID, 1)
	require.NoError(t, err)
	assert.True(t, cart.TotalAmount.Equal(dec("200")))

	f.setPrice(t, steak, "450")

	// Reads return the cached total until the next mutation.
	cart, err = f.cart.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.True(t, cart.TotalAmount.Equal(dec("200")))

	cart, err = f.cart.AddItem(ctx, 1, fries.ID, 1)
	require.NoError(t, err)
	assert.True(t, cart.TotalAmount.Equal(dec("500")), cart.TotalAmount.String())
}

func TestAddItemRejectsInvalidQuantity(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	item := f.seedItem(t, "Wrap", "5")

	_, err := f.cart.AddItem(ctx, 1, item.ID, 2)
	require.NoError(t, err)

	for _, qty := range []int{0, -1} {
		_, err = f.cart.AddItem(ctx, 1, item.ID, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}

	cart, err := f.cart.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Line(item.ID).Quantity)
	assert.True(t, cart.TotalAmount.Equal(dec("10")))
}

func TestAddItemRejectsQuantityOverflow(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	item := f.seedItem(t, "Fries", "2")

	_, err := f.cart.AddItem(ctx, 1, item.ID, math.MaxInt)
	require.NoError(t, err)

	_, err = f.cart.AddItem(ctx, 1, item.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	cart, err := f.cart.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, cart.Line(item.ID).Quantity)
	assert.True(t, cart.TotalAmount.IsPositive())

	order, err := f.orders.PlaceOrder(ctx, 1, checkout())
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.IsPositive())
}

func TestAddItemWithUnknownMenuItemPricesZero(t *testing.T) {
	f := setupFixture(t)

	cart, err := f.cart.AddItem(context.Background(), 1, 4242, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Nil(t, cart.Items[0].MenuItem)
	assert.True(t, cart.TotalAmount.IsZero())
}

func TestUpdateQuantity(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	item := f.seedItem(t, "Ramen", "9")
	other := f.seedItem(t, "Gyoza", "4")

	_, err := f.cart.UpdateQuantity(ctx, 1, item.ID, 2)
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = f.cart.AddItem(ctx, 1, item.ID, 1)
	require.NoError(t, err)

	_, err = f.cart.UpdateQuantity(ctx, 1, other.ID, 2)
	assert.ErrorIs(t, err, ErrItemNotInCart)

	for _, qty := range []int{0, -1} {
		_, err = f.cart.UpdateQuantity(ctx, 1, item.ID, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	cart, err := f.cart.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Line(item.ID).Quantity)
	assert.True(t, cart.TotalAmount.Equal(dec("9")))

	cart, err = f.cart.UpdateQuantity(ctx, 1, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Line(item.ID).Quantity)
	assert.True(t, cart.TotalAmount.Equal(dec("36")))
}

func TestRemoveItem(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	a := f.seedItem(t, "Bagel", "3")
	b := f.seedItem(t, "Coffee", "2")

	_, err := f.cart.RemoveItem(ctx, 1, a.ID)
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = f.cart.AddItem(ctx, 1, a.ID, 2)
	require.NoError(t, err)
	before, err := f.cart.AddItem(ctx, 1, b.ID, 1)
	require.NoError(t, err)

	same, err := f.cart.RemoveItem(ctx, 1, 9999)
	require.NoError(t, err)
	assert.Len(t, same.Items, 2)
	assert.True(t, same.TotalAmount.Equal(before.TotalAmount))
	assert.Equal(t, before.UpdatedAt.Unix(), same.UpdatedAt.Unix())

	cart, err := f.cart.RemoveItem(ctx, 1, a.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, b.ID, cart.Items[0].MenuItemID)
	assert.True(t, cart.TotalAmount.Equal(dec("2")))
}

func TestDeletedMenuItemPricesZeroOnNextMutation(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	a := f.seedItem(t, "Pie", "10")
	b := f.seedItem(t, "Tea", "5")

	_, err := f.cart.AddItem(ctx, 1, a.ID, 2)
	require.NoError(t, err)
	cart, err := f.cart.AddItem(ctx, 1, b.ID, 1)
	require.NoError(t, err)
	assert.True(t, cart.TotalAmount.Equal(dec("25")))

	f.deleteItem(t, a)

	cart, err = f.cart.AddItem(ctx, 1, b.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Nil(t, cart.Line(a.ID).MenuItem)
	assert.True(t, cart.TotalAmount.Equal(dec("10")), cart.TotalAmount.String())
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	item := f.seedItem(t, "Donut", "1.25")

	_, err := f.cart.AddItem(ctx, 1, item.ID, 4)
	require.NoError(t, err)

	other, err := f.cart.GetOrCreate(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestConcurrentAddItemLosesNoUpdates(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	item := f.seedItem(t, "Nuggets", "3")

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.cart.AddItem(ctx, 1, item.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	cart, err := f.cart.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers, cart.Items[0].Quantity)
	assert.True(t, cart.TotalAmount.Equal(dec("60")))
	assert.Zero(t, f.cart.locks.size())
}

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	km := newKeyedMutex()

	unlock := km.Lock(1)
	acquired := make(chan struct{})
	go func() {
		u := km.Lock(1)
		close(acquired)
		u()
	}()

	otherUnlock := km.Lock(2)
	otherUnlock()

	select {
	case <-acquired:
		t.Fatal("second holder acquired key 1 while it was held")
	default:
	}
	unlock()
	<-acquired

	assert.Eventually(t, func() bool { return km.size() == 0 }, time.Second, time.Millisecond)
}
