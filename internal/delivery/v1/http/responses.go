package http

import (
	"github.com/shopspring/decimal"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/internal/usecase"
)

// ProductResponse — товар в ответе API. Цены отдаются в денежных
// единицах, а не в копейках.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	Price         decimal.Decimal `json:"price"`
	DiscountPrice decimal.Decimal `json:"discount_price"`
	ImageKey      string          `json:"image_key,omitempty"`
	IsOutOfStock  bool            `json:"is_out_of_stock"`
}

type ProductsResponse struct {
	Products         []ProductResponse `json:"products"`
	NotFoundProducts []int64           `json:"not_found_products,omitempty"`
}

// CartLineResponse — строка корзины в ответе API.
type CartLineResponse struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	DiscountPrice decimal.Decimal `json:"discount_price"`
	ImageKey      string          `json:"image_key,omitempty"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// CartResponse — корзина целиком: сгруппированные строки, число сырых
// строк и денежный итог.
type CartResponse struct {
	Lines     []CartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Total     decimal.Decimal    `json:"total"`
}

// ConsolidateResponse — итог миграции cookie-корзины в долговременную.
type ConsolidateResponse struct {
	Migrated bool `json:"migrated"`
}

func NewProductResponse(info *usecase.ProductInfo) ProductResponse {
	return ProductResponse{
		ID:            info.ID,
		Name:          info.Name,
		CategoryID:    info.CategoryID,
		CategoryName:  info.CategoryName,
		Price:         domain.CentsToMoney(info.Price),
		DiscountPrice: domain.CentsToMoney(info.DiscountPrice),
		ImageKey:      info.ImageKey,
		IsOutOfStock:  info.IsOutOfStock,
	}
}

func NewProductsResponse(infos []usecase.ProductInfo, notFound []int64) ProductsResponse {
	products := make([]ProductResponse, 0, len(infos))
	for i := range infos {
		products = append(products, NewProductResponse(&infos[i]))
	}

	return ProductsResponse{
		Products:         products,
		NotFoundProducts: notFound,
	}
}

func NewCartResponse(view *usecase.CartView) CartResponse {
	lines := make([]CartLineResponse, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, CartLineResponse{
			ProductID:     line.ProductID,
			Name:          line.Name,
			Quantity:      line.Quantity,
			Price:         line.Price,
			DiscountPrice: line.DiscountPrice,
			ImageKey:      line.ImageKey,
			LineTotal:     line.LineTotal,
		})
	}

	return CartResponse{
		Lines:     lines,
		ItemCount: view.ItemCount,
		Total:     view.Total,
	}
}
