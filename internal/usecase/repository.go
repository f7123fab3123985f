package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sleek-tech/storefront-backend/internal/domain"
)

type ProductRepository interface {
	Upsert(ctx context.Context, product *domain.Product) (*UpsertProductRes, error)
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
	Search(ctx context.Context, req *SearchProductsReq) ([]ProductInfo, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

// CartRepository — долговременная корзина владельца в PostgreSQL.
// Корзина создаётся неявно при первом добавлении; qty добавляется
// к существующей строке продукта атомарно.
type CartRepository interface {
	AddItem(ctx context.Context, ownerID string, productID int64, qty int) error
	RemoveItem(ctx context.Context, ownerID string, productID int64) error
	Clear(ctx context.Context, ownerID string) error
	GetLines(ctx context.Context, ownerID string) ([]domain.CartLine, error)
	ItemCount(ctx context.Context, ownerID string) (int, error)
	Total(ctx context.Context, ownerID string) (decimal.Decimal, error)
}

// SessionCartRepository — сессионная корзина: явное чтение и запись
// всего списка строк по ключу сессии.
type SessionCartRepository interface {
	Get(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Set(ctx context.Context, sessionID string, lines []domain.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}
