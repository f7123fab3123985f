package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	Price         int64      `db:"price"`
	DiscountPrice int64      `db:"discount_price"`
	CategoryID    int64      `db:"category_id"`
	ImageKey      string     `db:"image_key"`
	IsOutOfStock  bool       `db:"is_out_of_stock"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
	IsArchived    bool       `db:"is_archived"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID         int64      `db:"id"`
	Name       string     `db:"name"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
	IsArchived bool       `db:"is_archived"`
}

// CartItemModel представляет запись таблицы cart_items в PostgreSQL.
type CartItemModel struct {
	ID        int64      `db:"id"`
	CartID    int64      `db:"cart_id"`
	ProductID int64      `db:"product_id"`
	Quantity  int        `db:"quantity"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OwnerID     string     `db:"owner_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
