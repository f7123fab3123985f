package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID            int64
	Name          string
	Price         int64 // Цена хранится в центах
	DiscountPrice int64 // Фактически списываемая цена (с учётом скидки), в центах
	CategoryID    int64
	ImageKey      string // Ключ изображения в S3
	IsOutOfStock  bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	IsArchived    bool
}

func NewProduct(name string, price, discountPrice, categoryID int64, imageKey string, outOfStock bool) *Product {
	return &Product{
		Name:          name,
		Price:         price,
		DiscountPrice: discountPrice,
		CategoryID:    categoryID,
		ImageKey:      imageKey,
		IsOutOfStock:  outOfStock,
	}
}

// Snapshot возвращает слепок товара для встраивания в строку корзины.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		Name:          p.Name,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		CategoryID:    p.CategoryID,
		ImageKey:      p.ImageKey,
		IsOutOfStock:  p.IsOutOfStock,
	}
}
