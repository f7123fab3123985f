package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sleek-tech/storefront-backend/internal/usecase"
	"github.com/sleek-tech/storefront-backend/pkg/e"
	"github.com/sleek-tech/storefront-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// registerNewProduct
//
//	@Summary		Регистрация нового товара
//	@Description	Создает новый товар в каталоге с изображениями
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name			formData	string					true	"Название товара"
//	@Param			category		formData	string					true	"Категория"
//	@Param			price			formData	number					true	"Цена"
//	@Param			discount_price	formData	number					false	"Цена со скидкой"
//	@Param			out_of_stock	formData	boolean					false	"Нет в наличии"
//	@Param			images			formData	file					false	"Изображения товара"
//	@Success		201				{object}	ProductResponse			"Успешное создание"
//	@Failure		400				{object}	ErrorResponse			"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) registerNewProduct(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	prMeta, err := parseProductForm(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		if !errors.Is(err, e.ErrNoImages) {
			p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
			WriteError(w, err)
			return
		}
	}

	info, err := p.productUsecase.RegisterNewProduct(r.Context(), usecase.NewAddNewProductReq(
		prMeta.Name, prMeta.CategoryName, prMeta.Price, prMeta.DiscountPrice, prMeta.OutOfStock, images))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, NewProductResponse(info))
}

// getProducts
//
//	@Summary		Информация о товарах
//	@Description	Возвращает товары по списку идентификаторов
//	@Tags			products
//	@Produce		json
//	@Param			ids	query		string	true	"Идентификаторы через запятую"
//	@Success		200	{object}	ProductsResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) getProducts(w http.ResponseWriter, r *http.Request) {
	idsParam := r.URL.Query().Get("ids")
	if idsParam == "" {
		WriteError(w, e.ErrInvalidProductID)
		return
	}

	var ids []int64
	for _, part := range strings.Split(idsParam, ",") {
		id, err := parseProductID(strings.TrimSpace(part))
		if err != nil {
			WriteError(w, err)
			return
		}
		ids = append(ids, id)
	}

	res, err := p.productUsecase.GetProductsInfo(r.Context(), usecase.NewGetProductsReq(ids))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProductsResponse(res.Products, res.NotFoundProducts))
}

// searchProducts
//
//	@Summary		Поиск товаров
//	@Description	Ищет товары по подстроке имени или категории
//	@Tags			products
//	@Produce		json
//	@Param			q			query		string	false	"Поисковая строка"
//	@Param			category_id	query		integer	false	"Фильтр по категории"
//	@Success		200			{object}	ProductsResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/products/search [get]
func (p *ProductHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	req := &usecase.SearchProductsReq{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
	}

	if catStr := r.URL.Query().Get("category_id"); catStr != "" {
		catID, err := strconv.ParseInt(catStr, 10, 64)
		if err != nil || catID <= 0 {
			WriteError(w, e.ErrStatusBadRequest)
			return
		}
		req.CategoryID = &catID
	}

	products, err := p.productUsecase.SearchProducts(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProductsResponse(products, nil))
}
