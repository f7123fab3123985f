package converter

import (
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/internal/usecase"
)

type productConverterImpl struct{}

func NewProductConverterImpl() ProductConverter {
	return &productConverterImpl{}
}

func (c *productConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}

	return &ProductModel{
		ID:            entity.ID,
		Name:          entity.Name,
		Price:         entity.Price,
		DiscountPrice: entity.DiscountPrice,
		CategoryID:    entity.CategoryID,
		ImageKey:      entity.ImageKey,
		IsOutOfStock:  entity.IsOutOfStock,
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
		IsArchived:    entity.IsArchived,
	}
}

func (c *productConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:            model.ID,
		Name:          model.Name,
		Price:         model.Price,
		DiscountPrice: model.DiscountPrice,
		CategoryID:    model.CategoryID,
		ImageKey:      model.ImageKey,
		IsOutOfStock:  model.IsOutOfStock,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
		IsArchived:    model.IsArchived,
	}
}

type categoryConverterImpl struct{}

func NewCategoryConverterImpl() CategoryConverter {
	return &categoryConverterImpl{}
}

func (c *categoryConverterImpl) ToModel(entity *domain.Category) *CategoryModel {
	if entity == nil {
		return nil
	}

	return &CategoryModel{
		ID:         entity.ID,
		Name:       entity.Name,
		CreatedAt:  entity.CreatedAt,
		UpdatedAt:  entity.UpdatedAt,
		IsArchived: !entity.IsActive,
	}
}

func (c *categoryConverterImpl) ToEntity(model *CategoryModel) *domain.Category {
	if model == nil {
		return nil
	}

	return &domain.Category{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		IsActive:  !model.IsArchived,
	}
}

type cartItemConverterImpl struct{}

func NewCartItemConverterImpl() CartItemConverter {
	return &cartItemConverterImpl{}
}

// ToLine возвращает строку корзины без слепка товара: данные каталога
// подтягиваются вызывающей стороной.
func (c *cartItemConverterImpl) ToLine(model *CartItemModel) domain.CartLine {
	return domain.CartLine{
		ProductID: model.ProductID,
		Quantity:  model.Quantity,
	}
}

func (c *cartItemConverterImpl) ToArrLine(models []*CartItemModel) []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(models))
	for _, model := range models {
		lines = append(lines, c.ToLine(model))
	}

	return lines
}

type outboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() OutboxEventConverter {
	return &outboxEventConverterImpl{}
}

func (c *outboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}

	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		OwnerID:     entity.OwnerID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *outboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}

	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		OwnerID:     model.OwnerID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *outboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	entities := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		entities = append(entities, c.ToEntity(model))
	}

	return entities
}
