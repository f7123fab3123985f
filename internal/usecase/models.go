package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sleek-tech/storefront-backend/internal/domain"
)

// PRODUCT USECASE

// AddNewProductReq — запрос на добавление нового товара.
type AddNewProductReq struct {
	Name          string
	CategoryName  string
	Price         int64
	DiscountPrice int64
	OutOfStock    bool
	Images        []ProductImage
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// GetProductsReq запрос информации о товарах по их идентификаторам.
type GetProductsReq struct {
	IDs []int64
}

// GetProductsRes — ответ с данными запрошенных товаров.
type GetProductsRes struct {
	Products         []ProductInfo
	NotFoundProducts []int64
}

// SearchProductsReq — поиск товаров по подстроке имени и/или категории.
type SearchProductsReq struct {
	Query      string
	CategoryID *int64
}

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID            int64
	Name          string
	CategoryID    int64
	CategoryName  string
	Price         int64
	DiscountPrice int64
	ImageKey      string
	IsOutOfStock  bool
}

// ToProduct восстанавливает доменный товар из DTO (для слепка в корзине).
func (p ProductInfo) ToProduct() *domain.Product {
	return &domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		CategoryID:    p.CategoryID,
		ImageKey:      p.ImageKey,
		IsOutOfStock:  p.IsOutOfStock,
	}
}

// CART USECASE

// CookieAddReq — добавление товара в cookie-корзину: текущие сырые
// строки приходят значением, результат переписывает cookie.
type CookieAddReq struct {
	ProductID int64
	Quantity  int
	Lines     []domain.CartLine
}

// CartLineView — строка корзины для выдачи наружу.
type CartLineView struct {
	ProductID     int64
	Name          string
	Quantity      int
	Price         decimal.Decimal
	DiscountPrice decimal.Decimal
	ImageKey      string
	LineTotal     decimal.Decimal
}

// CartView — агрегированное представление корзины: сгруппированные
// строки, число сырых строк и денежный итог.
type CartView struct {
	Lines     []CartLineView
	ItemCount int
	Total     decimal.Decimal
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// UploadImagesReq — запрос на загрузку изображений товара.
type UploadImagesReq struct {
	Name   string
	Images []ProductImage
}

// UploadImagesRes — результат загрузки изображений (ключи в MinIO).
type UploadImagesRes struct {
	ImagesKeys []string
}

// REPOSITORIES

type UpsertProductRes struct {
	Product   *domain.Product
	NoChanges bool
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	CartItemAdded    OutboxEventType = "cart.item_added"
	CartItemRemoved  OutboxEventType = "cart.item_removed"
	CartCleared      OutboxEventType = "cart.cleared"
	CartConsolidated OutboxEventType = "cart.consolidated"
)

// OutboxEvent — событие изменения корзины, записываемое в одну
// транзакцию с изменением и доставляемое в Kafka воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OwnerID     string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// cartEventPayload — JSON-тело события корзины.
type cartEventPayload struct {
	EventID    string          `json:"event_id"`
	EventType  OutboxEventType `json:"event_type"`
	OwnerID    string          `json:"owner_id"`
	ProductID  int64           `json:"product_id,omitempty"`
	Quantity   int             `json:"quantity,omitempty"`
	OccurredAt int64           `json:"occurred_at"`
}

// NewCartEvent собирает событие корзины с JSON-полезной нагрузкой.
func NewCartEvent(eventType OutboxEventType, ownerID string, productID int64, qty int) (*OutboxEvent, error) {
	eventID := uuid.NewString()

	payload, err := json.Marshal(cartEventPayload{
		EventID:    eventID,
		EventType:  eventType,
		OwnerID:    ownerID,
		ProductID:  productID,
		Quantity:   qty,
		OccurredAt: time.Now().UnixNano(),
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OwnerID:   ownerID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}, nil
}

// MAPPERS

func NewUpsertProductRes(product *domain.Product, noChanges bool) *UpsertProductRes {
	return &UpsertProductRes{
		Product:   product,
		NoChanges: noChanges,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewGetProductsRes(pr []ProductInfo, notFoundProducts []int64) *GetProductsRes {
	return &GetProductsRes{
		Products:         pr,
		NotFoundProducts: notFoundProducts,
	}
}

func NewGetProductsReq(ids []int64) *GetProductsReq {
	return &GetProductsReq{ids}
}

func NewAddNewProductReq(name string, category string, price, discountPrice int64, outOfStock bool, images []ProductImage) *AddNewProductReq {
	return &AddNewProductReq{
		Name:          name,
		CategoryName:  category,
		Price:         price,
		DiscountPrice: discountPrice,
		OutOfStock:    outOfStock,
		Images:        images,
	}
}

func NewCookieAddReq(productID int64, qty int, lines []domain.CartLine) *CookieAddReq {
	return &CookieAddReq{
		ProductID: productID,
		Quantity:  qty,
		Lines:     lines,
	}
}

func NewUploadImagesReq(name string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Name:   name,
		Images: images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}
