package converter

type ProductInfoRedisModel struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CategoryID    int64  `json:"category_id"`
	CategoryName  string `json:"category_name"`
	Price         int64  `json:"price"`
	DiscountPrice int64  `json:"discount_price"`
	ImageKey      string `json:"image_key"`
	IsOutOfStock  bool   `json:"is_out_of_stock"`
}
