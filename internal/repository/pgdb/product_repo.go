package pgdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/sleek-tech/storefront-backend/internal/usecase"
	"github.com/sleek-tech/storefront-backend/pkg/e"
	"github.com/sleek-tech/storefront-backend/pkg/tr"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Upsert идемпотентно создаёт или обновляет товар по уникальному имени.
// Запись обновляется только при изменении цен, категории, остатка или изображения.
func (p *ProductRepo) Upsert(ctx context.Context, product *domain.Product) (*usecase.UpsertProductRes, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// VALUES ($1..$6) name, price, discount_price, category_id, image_key, is_out_of_stock
	query := `
		WITH upsert AS (
		INSERT INTO products (name, price, discount_price, category_id, image_key, is_out_of_stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name)
		DO UPDATE SET
			price = EXCLUDED.price,
			discount_price = EXCLUDED.discount_price,
			category_id = EXCLUDED.category_id,
			image_key = EXCLUDED.image_key,
			is_out_of_stock = EXCLUDED.is_out_of_stock,
			updated_at = NOW()
		WHERE
			products.price IS DISTINCT FROM EXCLUDED.price OR
			products.discount_price IS DISTINCT FROM EXCLUDED.discount_price OR
			products.category_id IS DISTINCT FROM EXCLUDED.category_id OR
			products.image_key IS DISTINCT FROM EXCLUDED.image_key OR
			products.is_out_of_stock IS DISTINCT FROM EXCLUDED.is_out_of_stock
		RETURNING
			id, name, price, discount_price, category_id, image_key, is_out_of_stock,
			created_at, updated_at, is_archived
		)
		SELECT
			id, name, price, discount_price, category_id, image_key, is_out_of_stock,
			created_at, updated_at, is_archived,
			false AS no_changes
		FROM upsert

		UNION ALL

		SELECT
			id, name, price, discount_price, category_id, image_key, is_out_of_stock,
			created_at, updated_at, is_archived,
			true AS no_changes
		FROM products
		WHERE name = $1
		  AND NOT EXISTS (SELECT 1 FROM upsert);
	`

	var model converter.ProductModel
	var noChanges bool
	err = tx.QueryRow(ctx, query,
		product.Name, product.Price, product.DiscountPrice,
		product.CategoryID, product.ImageKey, product.IsOutOfStock,
	).Scan(
		&model.ID, &model.Name, &model.Price, &model.DiscountPrice,
		&model.CategoryID, &model.ImageKey, &model.IsOutOfStock,
		&model.CreatedAt, &model.UpdatedAt, &model.IsArchived, &noChanges,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.NewUpsertProductRes(p.conv.ToEntity(&model), noChanges), nil
}

// GetProductsInfo возвращает информацию о товарах по их идентификаторам,
// включая название категории. Архивные товары не возвращаются.
func (p *ProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]usecase.ProductInfo, error) {
	query := `
		SELECT pr.id, pr.name, pr.price, pr.discount_price, pr.category_id,
		       pr.image_key, pr.is_out_of_stock, cat.name
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.id = ANY($1)
		  AND NOT pr.is_archived;
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return scanProductInfos(rows)
}

func scanProductInfos(rows pgx.Rows) ([]usecase.ProductInfo, error) {
	var infos []usecase.ProductInfo
	for rows.Next() {
		var info usecase.ProductInfo
		err := rows.Scan(
			&info.ID, &info.Name, &info.Price, &info.DiscountPrice,
			&info.CategoryID, &info.ImageKey, &info.IsOutOfStock, &info.CategoryName,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return infos, nil
}

// Search ищет товары по подстроке имени или названия категории и/или по
// категории. Пустой фильтр возвращает весь неархивный каталог.
func (p *ProductRepo) Search(ctx context.Context, req *usecase.SearchProductsReq) ([]usecase.ProductInfo, error) {
	var (
		conditions = []string{"NOT pr.is_archived"}
		args       []any
	)

	if req.Query != "" {
		args = append(args, "%"+req.Query+"%")
		conditions = append(conditions, fmt.Sprintf("(pr.name ILIKE $%d OR cat.name ILIKE $%d)", len(args), len(args)))
	}

	if req.CategoryID != nil {
		args = append(args, *req.CategoryID)
		conditions = append(conditions, fmt.Sprintf("pr.category_id = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT pr.id, pr.name, pr.price, pr.discount_price, pr.category_id,
		       pr.image_key, pr.is_out_of_stock, cat.name
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE %s
		ORDER BY pr.name;
	`, strings.Join(conditions, " AND "))

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return scanProductInfos(rows)
}
