package pgdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/sleek-tech/storefront-backend/pkg/e"
	"github.com/sleek-tech/storefront-backend/pkg/tr"
)

// CartRepo реализует долговременную корзину владельца поверх PostgreSQL.
// Корзина создаётся неявно при первом добавлении; каждый product id
// держит не более одной строки (UNIQUE (cart_id, product_id)).
type CartRepo struct {
	pool *pgxpool.Pool
	conv converter.CartItemConverter
}

func NewCartRepo(pool *pgxpool.Pool, conv converter.CartItemConverter) *CartRepo {
	return &CartRepo{
		pool: pool,
		conv: conv,
	}
}

// AddItem добавляет qty единиц товара в корзину владельца одной атомарной
// операцией: корзина создаётся при отсутствии, количество существующей
// строки увеличивается на qty, иначе вставляется новая строка.
func (c *CartRepo) AddItem(ctx context.Context, ownerID string, productID int64, qty int) error {
	if qty <= 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrQuantityNotPositive)
	}

	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		WITH cart AS (
			INSERT INTO carts (owner_id)
			VALUES ($1)
			ON CONFLICT (owner_id)
			DO UPDATE SET updated_at = NOW()
			RETURNING id
		)
		INSERT INTO cart_items (cart_id, product_id, quantity)
		SELECT cart.id, $2, $3 FROM cart
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity,
			updated_at = NOW();
	`

	if _, err := tx.Exec(ctx, query, ownerID, productID, qty); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// RemoveItem удаляет все строки товара из корзины владельца.
// Отсутствие корзины или строки — no-op.
func (c *CartRepo) RemoveItem(ctx context.Context, ownerID string, productID int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id
		  AND c.owner_id = $1
		  AND ci.product_id = $2;
	`

	if _, err := tx.Exec(ctx, query, ownerID, productID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Clear удаляет все строки корзины владельца. Отсутствие корзины — no-op.
func (c *CartRepo) Clear(ctx context.Context, ownerID string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id
		  AND c.owner_id = $1;
	`

	if _, err := tx.Exec(ctx, query, ownerID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetLines возвращает строки корзины владельца как пары
// (product_id, quantity). Отсутствие корзины — пустой список.
func (c *CartRepo) GetLines(ctx context.Context, ownerID string) ([]domain.CartLine, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.id
		WHERE c.owner_id = $1
		ORDER BY ci.id;
	`

	rows, err := c.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.CartItemModel, 0)
	for rows.Next() {
		var model converter.CartItemModel
		if err := rows.Scan(&model.ID, &model.CartID, &model.ProductID, &model.Quantity, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrLine(models), nil
}

// ItemCount возвращает число строк корзины владельца (0 без корзины).
func (c *CartRepo) ItemCount(ctx context.Context, ownerID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.id
		WHERE c.owner_id = $1;
	`

	var count int
	if err := c.pool.QueryRow(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}

// Total считает итог корзины владельца по каталожной цене со скидкой.
// Товары, исчезнувшие из каталога (архивные), не дают вклада в сумму.
func (c *CartRepo) Total(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ci.quantity * pr.discount_price), 0)
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.id
		LEFT JOIN products pr ON pr.id = ci.product_id AND NOT pr.is_archived
		WHERE c.owner_id = $1;
	`

	var totalCents int64
	if err := c.pool.QueryRow(ctx, query, ownerID).Scan(&totalCents); err != nil {
		return decimal.Zero, e.Wrap(whereami.WhereAmI(), err)
	}

	return domain.CentsToMoney(totalCents), nil
}
