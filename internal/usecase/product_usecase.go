package usecase

import (
	"context"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/pkg/e"
	"github.com/sleek-tech/storefront-backend/pkg/logger"
)

// ProductUseCase реализует бизнес-логику каталога товаров.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	dbPool       transaction.Transactional
	imagesInfra  ImagesInfra
	cacheRepo    CacheRepository
	logger       logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	dbPool transaction.Transactional,
	imagesInfra ImagesInfra,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		dbPool:       dbPool,
		imagesInfra:  imagesInfra,
		cacheRepo:    cacheRepo,
		logger:       logger,
	}
}

// RegisterNewProduct обрабатывает добавление нового товара с изображениями,
// категорией и сохранением в хранилища.
func (p *ProductUseCase) RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*ProductInfo, error) {
	const op = "ProductUseCase.RegisterNewProduct"

	// Валидация данных
	var err error
	err = p.validateProduct(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		imagesRes *UploadImagesRes
		uploaded  bool
	)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции и очистка загруженных изображений
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded && imagesRes != nil {
				p.logger.Warnf(
					"Cleaning up orphaned images after transaction failure. product_name: %s, error: %v",
					req.Name,
					e.Wrap(op, err),
				)

				p.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// идемпотентное создание категории
	category, err := p.createCategory(ctx, req.CategoryName)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Сохранение изображений в MinIO
	imageKey := ""
	if len(req.Images) > 0 {
		imagesRes, err = p.uploadImages(ctx, req.Name, req.Images)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		uploaded = true
		imageKey = imagesRes.ImagesKeys[0]
	}

	// идемпотентное создание товара
	res, err := p.upsertProduct(ctx, req, category.ID, imageKey)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Коммит изменений в бд
	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := p.cacheRepo.DeleteProducts(ctx, []int64{res.Product.ID}); err != nil {
		p.logger.Warnf("Failed to delete products from cache: %v", e.Wrap(op, err))
	}

	info := newProductInfoFromDomain(res.Product, category.Name)

	return &info, nil
}

// GetProductsInfo возвращает информацию о товарах по их идентификаторам.
func (p *ProductUseCase) GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error) {
	const op = "ProductUseCase.GetProductsInfo"

	// Валидация
	if len(req.IDs) == 0 {
		return nil, e.Wrap(op, e.ErrNoProducts)
	}

	// Поиск товаров в кэше
	cacheProductsMap, err := p.cacheRepo.GetProducts(ctx, req.IDs)
	var nonCacheable []int64
	if err != nil {
		nonCacheable = append(nonCacheable, req.IDs...)
	} else {
		for _, productId := range req.IDs {
			if _, ok := cacheProductsMap[productId]; !ok {
				nonCacheable = append(nonCacheable, productId)
			}
		}
	}

	// Получение товаров из БД
	var productsInfoFromDB []ProductInfo
	if len(nonCacheable) > 0 {
		productsInfoFromDB, err = p.productRepo.GetProductsInfo(ctx, nonCacheable)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		// Фоновое добавление товаров в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := p.cacheRepo.SetProducts(bgCtx, productsInfoFromDB); err != nil {
				p.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
			}
		}()
	}

	dbProductsMap := make(map[int64]ProductInfo, len(productsInfoFromDB))
	for _, productInfo := range productsInfoFromDB {
		dbProductsMap[productInfo.ID] = productInfo
	}

	// Формирование результата
	result := make([]ProductInfo, 0, len(req.IDs))
	notFoundProducts := make([]int64, 0)
	for _, id := range req.IDs {
		if pr, ok := cacheProductsMap[id]; ok {
			result = append(result, pr)
		} else if pr, ok := dbProductsMap[id]; ok {
			result = append(result, pr)
		} else {
			notFoundProducts = append(notFoundProducts, id)
		}
	}

	return NewGetProductsRes(result, notFoundProducts), nil
}

// SearchProducts ищет товары по подстроке имени и/или категории.
// Пустой запрос без фильтра возвращает весь каталог.
func (p *ProductUseCase) SearchProducts(ctx context.Context, req *SearchProductsReq) ([]ProductInfo, error) {
	const op = "ProductUseCase.SearchProducts"

	req.Query = strings.TrimSpace(req.Query)

	products, err := p.productRepo.Search(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// upsertProduct идемпотентно создаёт или обновляет товар.
func (p *ProductUseCase) upsertProduct(ctx context.Context, req *AddNewProductReq, categoryID int64, imageKey string) (*UpsertProductRes, error) {
	return p.productRepo.Upsert(ctx, domain.NewProduct(req.Name, req.Price, req.DiscountPrice, categoryID, imageKey, req.OutOfStock))
}

// createCategory идемпотентно создаёт категорию по имени.
func (p *ProductUseCase) createCategory(ctx context.Context, categoryName string) (*domain.Category, error) {
	return p.categoryRepo.Create(ctx, domain.NewCategory(categoryName))
}

// uploadImages сохраняет изображения товара в MinIO.
func (p *ProductUseCase) uploadImages(ctx context.Context, name string, images []ProductImage) (*UploadImagesRes, error) {
	return p.imagesInfra.UploadImages(ctx, NewUploadImagesReq(name, images))
}

// validateProduct проверяет корректность входных данных запроса на добавление товара.
func (p *ProductUseCase) validateProduct(req *AddNewProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Price <= 0 || req.DiscountPrice <= 0 {
		return e.ErrPriceMustBePositive
	}

	if req.DiscountPrice > req.Price {
		return e.ErrInvalidPrice
	}

	return nil
}

func newProductInfoFromDomain(product *domain.Product, categoryName string) ProductInfo {
	return ProductInfo{
		ID:            product.ID,
		Name:          product.Name,
		CategoryID:    product.CategoryID,
		CategoryName:  categoryName,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		ImageKey:      product.ImageKey,
		IsOutOfStock:  product.IsOutOfStock,
	}
}
