package usecase

import (
	"context"

	"github.com/sleek-tech/storefront-backend/internal/domain"
)

// CartUC — операции корзины на всех трёх уровнях хранения:
// cookie анонимного покупателя, серверная сессия и долговременная
// корзина в базе данных, плюс перенос cookie-корзины при входе.
type CartUC interface {
	// Cookie-корзина: список строк передаётся значением (читает и
	// переписывает cookie транспортный слой).
	AddToCookieCart(ctx context.Context, req *CookieAddReq) ([]domain.CartLine, error)
	RemoveFromCookieCart(lines []domain.CartLine, productID int64) []domain.CartLine
	CookieCartView(lines []domain.CartLine) *CartView

	// Сессионная корзина.
	AddToSessionCart(ctx context.Context, sessionID string, productID int64) error
	DecrementSessionCart(ctx context.Context, sessionID string, productID int64) error
	RemoveFromSessionCart(ctx context.Context, sessionID string, productID int64) error
	SessionCartView(ctx context.Context, sessionID string) (*CartView, error)

	// Долговременная корзина, привязанная к владельцу.
	AddToOwnerCart(ctx context.Context, ownerID string, productID int64) error
	RemoveFromOwnerCart(ctx context.Context, ownerID string, productID int64) error
	ClearOwnerCart(ctx context.Context, ownerID string) error
	OwnerCartView(ctx context.Context, ownerID string) (*CartView, error)

	// Consolidate переносит сырые строки cookie-корзины в корзину владельца.
	Consolidate(ctx context.Context, ownerID string, lines []domain.CartLine) error
}

type ProductUC interface {
	RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*ProductInfo, error)
	GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
	SearchProducts(ctx context.Context, req *SearchProductsReq) ([]ProductInfo, error)
}
