package converter

import (
	"github.com/sleek-tech/storefront-backend/internal/usecase"
)

type ProductInfoConverterImpl struct{}

func NewProductInfoConverterImpl() *ProductInfoConverterImpl {
	return &ProductInfoConverterImpl{}
}

func (c *ProductInfoConverterImpl) ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel {
	if entity == nil {
		return nil
	}

	return &ProductInfoRedisModel{
		ID:            entity.ID,
		Name:          entity.Name,
		CategoryID:    entity.CategoryID,
		CategoryName:  entity.CategoryName,
		Price:         entity.Price,
		DiscountPrice: entity.DiscountPrice,
		ImageKey:      entity.ImageKey,
		IsOutOfStock:  entity.IsOutOfStock,
	}
}

func (c *ProductInfoConverterImpl) ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo {
	if model == nil {
		return nil
	}

	return &usecase.ProductInfo{
		ID:            model.ID,
		Name:          model.Name,
		CategoryID:    model.CategoryID,
		CategoryName:  model.CategoryName,
		Price:         model.Price,
		DiscountPrice: model.DiscountPrice,
		ImageKey:      model.ImageKey,
		IsOutOfStock:  model.IsOutOfStock,
	}
}

func (c *ProductInfoConverterImpl) ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel {
	if entities == nil {
		return nil
	}

	models := make([]ProductInfoRedisModel, len(entities))
	for i := range entities {
		models[i] = *c.ToRedisModel(&entities[i])
	}

	return models
}

func (c *ProductInfoConverterImpl) ToArrUseCase(models []ProductInfoRedisModel) []usecase.ProductInfo {
	if models == nil {
		return nil
	}

	entities := make([]usecase.ProductInfo, len(models))
	for i := range models {
		entities[i] = *c.ToUseCase(&models[i])
	}

	return entities
}
