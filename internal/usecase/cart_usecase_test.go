package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartUC(
	cartRepo *mockCartRepo,
	sessionRepo *mockSessionRepo,
	productRepo *mockProductRepo,
	outboxRepo *mockOutboxRepo,
) *CartUseCase {
	if cartRepo.lines == nil {
		cartRepo.lines = make(map[string][]domain.CartLine)
	}
	return NewCartUC(
		cartRepo,
		sessionRepo,
		productRepo,
		&mockCacheRepo{},
		outboxRepo,
		fakeDB{},
		nopLogger{},
	)
}

func catalogWith(products ...ProductInfo) *mockProductRepo {
	repo := &mockProductRepo{products: make(map[int64]ProductInfo)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func TestAddToCookieCart_DefaultsQuantityToOne(t *testing.T) {
	uc := newTestCartUC(&mockCartRepo{}, &mockSessionRepo{}, catalogWith(
		ProductInfo{ID: 1, Name: "shirt", Price: 800, DiscountPrice: 800},
	), &mockOutboxRepo{})

	lines, err := uc.AddToCookieCart(context.Background(), NewCookieAddReq(1, 0, nil))
	require.NoError(t, err)

	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "shirt", lines[0].Snapshot.Name)
}

func TestAddToCookieCart_MergesRepeatedAdds(t *testing.T) {
	uc := newTestCartUC(&mockCartRepo{}, &mockSessionRepo{}, catalogWith(
		ProductInfo{ID: 1, Name: "shirt", Price: 800, DiscountPrice: 800},
	), &mockOutboxRepo{})

	ctx := context.Background()
	lines, err := uc.AddToCookieCart(ctx, NewCookieAddReq(1, 2, nil))
	require.NoError(t, err)
	lines, err = uc.AddToCookieCart(ctx, NewCookieAddReq(1, 3, lines))
	require.NoError(t, err)

	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)

	view := uc.CookieCartView(lines)
	assert.Equal(t, 1, view.ItemCount)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("40.00")), "got %s", view.Total)
}

func TestAddToCookieCart_RejectsOutOfStock(t *testing.T) {
	uc := newTestCartUC(&mockCartRepo{}, &mockSessionRepo{}, catalogWith(
		ProductInfo{ID: 1, Name: "shirt", Price: 800, DiscountPrice: 800, IsOutOfStock: true},
	), &mockOutboxRepo{})

	_, err := uc.AddToCookieCart(context.Background(), NewCookieAddReq(1, 1, nil))
	assert.ErrorIs(t, err, e.ErrProductOutOfStock)
}

func TestAddToCookieCart_UnknownProduct(t *testing.T) {
	uc := newTestCartUC(&mockCartRepo{}, &mockSessionRepo{}, catalogWith(), &mockOutboxRepo{})

	_, err := uc.AddToCookieCart(context.Background(), NewCookieAddReq(99, 1, nil))
	assert.ErrorIs(t, err, e.ErrProductNotInCatalog)
}

func TestSessionCart_AddAndDecrement(t *testing.T) {
	sessionRepo := &mockSessionRepo{}
	uc := newTestCartUC(&mockCartRepo{}, sessionRepo, catalogWith(
		ProductInfo{ID: 1, Name: "shirt", Price: 800, DiscountPrice: 800},
	), &mockOutboxRepo{})

	ctx := context.Background()
	require.NoError(t, uc.AddToSessionCart(ctx, "sess", 1))
	require.NoError(t, uc.AddToSessionCart(ctx, "sess", 1))

	view, err := uc.SessionCartView(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	// Декремент до нуля убирает строку из корзины.
	require.NoError(t, uc.DecrementSessionCart(ctx, "sess", 1))
	require.NoError(t, uc.DecrementSessionCart(ctx, "sess", 1))

	view, err = uc.SessionCartView(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestSessionCart_RemoveDropsWholeLine(t *testing.T) {
	sessionRepo := &mockSessionRepo{}
	uc := newTestCartUC(&mockCartRepo{}, sessionRepo, catalogWith(
		ProductInfo{ID: 1, Name: "shirt", Price: 800, DiscountPrice: 800},
	), &mockOutboxRepo{})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, uc.AddToSessionCart(ctx, "sess", 1))
	}
	require.NoError(t, uc.RemoveFromSessionCart(ctx, "sess", 1))

	view, err := uc.SessionCartView(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestSessionCart_MissingSessionID(t *testing.T) {
	uc := newTestCartUC(&mockCartRepo{}, &mockSessionRepo{}, catalogWith(), &mockOutboxRepo{})

	err := uc.AddToSessionCart(context.Background(), "", 1)
	assert.ErrorIs(t, err, e.ErrMissingSessionID)
}

func TestAddToOwnerCart_WritesOutboxEvent(t *testing.T) {
	cartRepo := &mockCartRepo{}
	outboxRepo := &mockOutboxRepo{}
	uc := newTestCartUC(cartRepo, &mockSessionRepo{}, catalogWith(
		ProductInfo{ID: 1, Name: "shirt", Price: 800, DiscountPrice: 800},
	), outboxRepo)

	require.NoError(t, uc.AddToOwnerCart(context.Background(), "owner-1", 1))

	require.Len(t, cartRepo.addCalls, 1)
	assert.Equal(t, addCall{ownerID: "owner-1", productID: 1, qty: 1}, cartRepo.addCalls[0])

	require.Len(t, outboxRepo.events, 1)
	assert.Equal(t, CartItemAdded, outboxRepo.events[0].EventType)
	assert.Equal(t, "owner-1", outboxRepo.events[0].OwnerID)
}

func TestAddToOwnerCart_RepoErrorSkipsOutbox(t *testing.T) {
	cartRepo := &mockCartRepo{err: errors.New("db down")}
	outboxRepo := &mockOutboxRepo{}
	uc := newTestCartUC(cartRepo, &mockSessionRepo{}, catalogWith(
		ProductInfo{ID: 1, Name: "shirt", Price: 800, DiscountPrice: 800},
	), outboxRepo)

	err := uc.AddToOwnerCart(context.Background(), "owner-1", 1)
	require.Error(t, err)
	assert.Empty(t, outboxRepo.events)
}

func TestOwnerCartView_SkipsMissingCatalogLines(t *testing.T) {
	cartRepo := &mockCartRepo{
		lines: map[string][]domain.CartLine{
			"owner-1": {
				{ProductID: 1, Quantity: 2},
				{ProductID: 2, Quantity: 1},
			},
		},
		total: decimal.RequireFromString("13.00"),
	}
	// Товар 2 исчез из каталога: строка пропускается, операция не валится.
	uc := newTestCartUC(cartRepo, &mockSessionRepo{}, catalogWith(
		ProductInfo{ID: 1, Name: "shirt", Price: 500, DiscountPrice: 500},
	), &mockOutboxRepo{})

	view, err := uc.OwnerCartView(context.Background(), "owner-1")
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(1), view.Lines[0].ProductID)
	assert.Equal(t, 2, view.ItemCount)
	assert.True(t, view.Total.Equal(decimal.RequireFromString("13.00")), "got %s", view.Total)
}

func TestConsolidate_MigratesStoredQuantities(t *testing.T) {
	cartRepo := &mockCartRepo{}
	outboxRepo := &mockOutboxRepo{}
	uc := newTestCartUC(cartRepo, &mockSessionRepo{}, catalogWith(
		ProductInfo{ID: 1, Name: "shirt", Price: 800, DiscountPrice: 800},
		ProductInfo{ID: 2, Name: "cap", Price: 300, DiscountPrice: 300},
	), outboxRepo)

	// Строка с количеством 3 переносится как 3 единицы, а не как одна
	// запись: счётчик добавлений не теряется при миграции.
	lines := []domain.CartLine{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 2},
	}

	require.NoError(t, uc.Consolidate(context.Background(), "owner-1", lines))

	require.Len(t, cartRepo.addCalls, 2)
	assert.Equal(t, addCall{ownerID: "owner-1", productID: 1, qty: 3}, cartRepo.addCalls[0])
	assert.Equal(t, addCall{ownerID: "owner-1", productID: 2, qty: 2}, cartRepo.addCalls[1])

	require.Len(t, outboxRepo.events, 1)
	assert.Equal(t, CartConsolidated, outboxRepo.events[0].EventType)
}

func TestConsolidate_EmptyCookieIsNoop(t *testing.T) {
	cartRepo := &mockCartRepo{}
	outboxRepo := &mockOutboxRepo{}
	uc := newTestCartUC(cartRepo, &mockSessionRepo{}, catalogWith(), outboxRepo)

	require.NoError(t, uc.Consolidate(context.Background(), "owner-1", nil))

	assert.Empty(t, cartRepo.addCalls)
	assert.Empty(t, outboxRepo.events)
}

func TestConsolidate_SkipsMissingAndNonPositive(t *testing.T) {
	cartRepo := &mockCartRepo{}
	outboxRepo := &mockOutboxRepo{}
	uc := newTestCartUC(cartRepo, &mockSessionRepo{}, catalogWith(
		ProductInfo{ID: 1, Name: "shirt", Price: 800, DiscountPrice: 800},
	), outboxRepo)

	lines := []domain.CartLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 99, Quantity: 5}, // нет в каталоге
		{ProductID: 1, Quantity: 0},  // испорченная строка
	}

	require.NoError(t, uc.Consolidate(context.Background(), "owner-1", lines))

	require.Len(t, cartRepo.addCalls, 1)
	assert.Equal(t, addCall{ownerID: "owner-1", productID: 1, qty: 2}, cartRepo.addCalls[0])
}

func TestConsolidate_MissingOwner(t *testing.T) {
	uc := newTestCartUC(&mockCartRepo{}, &mockSessionRepo{}, catalogWith(), &mockOutboxRepo{})

	err := uc.Consolidate(context.Background(), "", []domain.CartLine{{ProductID: 1, Quantity: 1}})
	assert.ErrorIs(t, err, e.ErrMissingOwnerID)
}
