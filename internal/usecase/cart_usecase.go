package usecase

import (
	"context"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/pkg/e"
	"github.com/sleek-tech/storefront-backend/pkg/logger"
)

// CartUseCase реализует бизнес-логику корзины на трёх уровнях хранения
// и перенос анонимной корзины в долговременную при входе покупателя.
type CartUseCase struct {
	cartRepo    CartRepository
	sessionRepo SessionCartRepository
	productRepo ProductRepository
	cacheRepo   CacheRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewCartUC(
	cartRepo CartRepository,
	sessionRepo SessionCartRepository,
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		sessionRepo: sessionRepo,
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// COOKIE-КОРЗИНА

// AddToCookieCart вливает товар в переданные строки cookie-корзины и
// возвращает новый список для перезаписи cookie. Количество по
// умолчанию — 1. Товар не из каталога или без остатка отклоняется.
func (c *CartUseCase) AddToCookieCart(ctx context.Context, req *CookieAddReq) ([]domain.CartLine, error) {
	const op = "CartUseCase.AddToCookieCart"

	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}

	product, err := c.getProduct(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if product.IsOutOfStock {
		return nil, e.Wrap(op, e.ErrProductOutOfStock)
	}

	return domain.AddLine(req.Lines, product.ToProduct(), qty), nil
}

// RemoveFromCookieCart убирает из строк cookie-корзины все записи товара.
// Каталог не опрашивается: удаление снятого с продажи товара тоже законно.
func (c *CartUseCase) RemoveFromCookieCart(lines []domain.CartLine, productID int64) []domain.CartLine {
	return domain.RemoveLine(lines, productID)
}

// CookieCartView агрегирует сырые строки cookie-корзины: группировка по
// товару, число сырых строк и итог по фактической цене.
func (c *CartUseCase) CookieCartView(lines []domain.CartLine) *CartView {
	return viewFromLines(lines)
}

// СЕССИОННАЯ КОРЗИНА

// AddToSessionCart добавляет единицу товара в сессионную корзину.
func (c *CartUseCase) AddToSessionCart(ctx context.Context, sessionID string, productID int64) error {
	const op = "CartUseCase.AddToSessionCart"

	if sessionID == "" {
		return e.Wrap(op, e.ErrMissingSessionID)
	}

	product, err := c.getProduct(ctx, productID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if product.IsOutOfStock {
		return e.Wrap(op, e.ErrProductOutOfStock)
	}

	lines, err := c.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return e.Wrap(op, err)
	}

	lines = domain.AddLine(lines, product.ToProduct(), 1)

	return e.WrapIfErr(op, c.sessionRepo.Set(ctx, sessionID, lines))
}

// DecrementSessionCart уменьшает количество товара на единицу, при нуле
// строка удаляется. Отсутствующий товар — no-op.
func (c *CartUseCase) DecrementSessionCart(ctx context.Context, sessionID string, productID int64) error {
	const op = "CartUseCase.DecrementSessionCart"

	if sessionID == "" {
		return e.Wrap(op, e.ErrMissingSessionID)
	}

	lines, err := c.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return e.Wrap(op, err)
	}

	return e.WrapIfErr(op, c.sessionRepo.Set(ctx, sessionID, domain.DecrementLine(lines, productID)))
}

// RemoveFromSessionCart удаляет строку товара целиком, независимо от количества.
func (c *CartUseCase) RemoveFromSessionCart(ctx context.Context, sessionID string, productID int64) error {
	const op = "CartUseCase.RemoveFromSessionCart"

	if sessionID == "" {
		return e.Wrap(op, e.ErrMissingSessionID)
	}

	lines, err := c.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return e.Wrap(op, err)
	}

	return e.WrapIfErr(op, c.sessionRepo.Set(ctx, sessionID, domain.RemoveLine(lines, productID)))
}

func (c *CartUseCase) SessionCartView(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "CartUseCase.SessionCartView"

	if sessionID == "" {
		return nil, e.Wrap(op, e.ErrMissingSessionID)
	}

	lines, err := c.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return viewFromLines(lines), nil
}

// ДОЛГОВРЕМЕННАЯ КОРЗИНА

// AddToOwnerCart добавляет единицу товара в корзину владельца.
// Корзина создаётся при первом добавлении; событие изменения пишется
// в outbox той же транзакцией.
func (c *CartUseCase) AddToOwnerCart(ctx context.Context, ownerID string, productID int64) error {
	const op = "CartUseCase.AddToOwnerCart"

	if ownerID == "" {
		return e.Wrap(op, e.ErrMissingOwnerID)
	}

	product, err := c.getProduct(ctx, productID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if product.IsOutOfStock {
		return e.Wrap(op, e.ErrProductOutOfStock)
	}

	err = c.inTx(ctx, func(ctx context.Context) error {
		if err := c.cartRepo.AddItem(ctx, ownerID, productID, 1); err != nil {
			return err
		}

		return c.createCartEvent(ctx, CartItemAdded, ownerID, productID, 1)
	})

	return e.WrapIfErr(op, err)
}

// RemoveFromOwnerCart удаляет все строки товара из корзины владельца.
// Отсутствие корзины или строки — no-op.
func (c *CartUseCase) RemoveFromOwnerCart(ctx context.Context, ownerID string, productID int64) error {
	const op = "CartUseCase.RemoveFromOwnerCart"

	if ownerID == "" {
		return e.Wrap(op, e.ErrMissingOwnerID)
	}

	err := c.inTx(ctx, func(ctx context.Context) error {
		if err := c.cartRepo.RemoveItem(ctx, ownerID, productID); err != nil {
			return err
		}

		return c.createCartEvent(ctx, CartItemRemoved, ownerID, productID, 0)
	})

	return e.WrapIfErr(op, err)
}

// ClearOwnerCart удаляет все строки корзины владельца.
func (c *CartUseCase) ClearOwnerCart(ctx context.Context, ownerID string) error {
	const op = "CartUseCase.ClearOwnerCart"

	if ownerID == "" {
		return e.Wrap(op, e.ErrMissingOwnerID)
	}

	err := c.inTx(ctx, func(ctx context.Context) error {
		if err := c.cartRepo.Clear(ctx, ownerID); err != nil {
			return err
		}

		return c.createCartEvent(ctx, CartCleared, ownerID, 0, 0)
	})

	return e.WrapIfErr(op, err)
}

// OwnerCartView возвращает корзину владельца: строки дополняются
// актуальными данными каталога, итог считается по каталожной цене со
// скидкой. Товар, исчезнувший из каталога, не валит операцию — строка
// исключается из выдачи с предупреждением.
func (c *CartUseCase) OwnerCartView(ctx context.Context, ownerID string) (*CartView, error) {
	const op = "CartUseCase.OwnerCartView"

	if ownerID == "" {
		return nil, e.Wrap(op, e.ErrMissingOwnerID)
	}

	lines, err := c.cartRepo.GetLines(ctx, ownerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	total, err := c.cartRepo.Total(ctx, ownerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	infos := make(map[int64]ProductInfo, len(ids))
	if len(ids) > 0 {
		productInfos, err := c.productRepo.GetProductsInfo(ctx, ids)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		for _, info := range productInfos {
			infos[info.ID] = info
		}
	}

	views := make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		info, ok := infos[line.ProductID]
		if !ok {
			// Нарушение целостности данных: строка ссылается на товар,
			// которого больше нет в каталоге.
			c.logger.Warnf("cart line references missing catalog product: owner_id=%s, product_id=%d", ownerID, line.ProductID)
			continue
		}

		views = append(views, newCartLineView(line.ProductID, info.Name, line.Quantity, info.Price, info.DiscountPrice, info.ImageKey))
	}

	return &CartView{
		Lines:     views,
		ItemCount: len(lines),
		Total:     total,
	}, nil
}

// КОНСОЛИДАЦИЯ

// Consolidate переносит сырые строки cookie-корзины в корзину владельца.
// Количество каждой строки передаётся в добавление целиком — счётчик
// добавлений не теряется. Пустой список — no-op без побочных эффектов.
// Товары, исчезнувшие из каталога, пропускаются с предупреждением.
// Удаление cookie выполняет вызывающая сторона после успешного переноса.
func (c *CartUseCase) Consolidate(ctx context.Context, ownerID string, lines []domain.CartLine) error {
	const op = "CartUseCase.Consolidate"

	if ownerID == "" {
		return e.Wrap(op, e.ErrMissingOwnerID)
	}

	if len(lines) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	productInfos, err := c.productRepo.GetProductsInfo(ctx, ids)
	if err != nil {
		return e.Wrap(op, err)
	}

	known := make(map[int64]struct{}, len(productInfos))
	for _, info := range productInfos {
		known[info.ID] = struct{}{}
	}

	err = c.inTx(ctx, func(ctx context.Context) error {
		migrated := 0
		for _, line := range lines {
			if line.Quantity <= 0 {
				continue
			}

			if _, ok := known[line.ProductID]; !ok {
				c.logger.Warnf("skipping migration of missing catalog product: owner_id=%s, product_id=%d", ownerID, line.ProductID)
				continue
			}

			if err := c.cartRepo.AddItem(ctx, ownerID, line.ProductID, line.Quantity); err != nil {
				return err
			}
			migrated++
		}

		if migrated == 0 {
			return nil
		}

		return c.createCartEvent(ctx, CartConsolidated, ownerID, 0, migrated)
	})

	return e.WrapIfErr(op, err)
}

// ВСПОМОГАТЕЛЬНОЕ

// getProduct возвращает товар из кэша или каталога.
// Отсутствие в каталоге — e.ErrProductNotInCatalog.
func (c *CartUseCase) getProduct(ctx context.Context, productID int64) (*ProductInfo, error) {
	if cached, err := c.cacheRepo.GetProducts(ctx, []int64{productID}); err == nil {
		if info, ok := cached[productID]; ok {
			return &info, nil
		}
	}

	infos, err := c.productRepo.GetProductsInfo(ctx, []int64{productID})
	if err != nil {
		return nil, err
	}

	if len(infos) == 0 {
		return nil, e.ErrProductNotInCatalog
	}

	return &infos[0], nil
}

// inTx исполняет fn в одной транзакции: объект транзакции кладётся в
// контекст, репозитории достают его через tr.TxFromCtx.
func (c *CartUseCase) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = fn(ctx); err != nil {
		return err
	}

	err = tx.Commit(ctx)
	return err
}

func (c *CartUseCase) createCartEvent(ctx context.Context, eventType OutboxEventType, ownerID string, productID int64, qty int) error {
	event, err := NewCartEvent(eventType, ownerID, productID, qty)
	if err != nil {
		return err
	}

	_, err = c.outboxRepo.Create(ctx, event)
	return err
}

// viewFromLines строит представление корзины из сырых строк со слепками.
func viewFromLines(lines []domain.CartLine) *CartView {
	grouped := domain.MergeLines(lines)

	views := make([]CartLineView, 0, len(grouped))
	for _, line := range grouped {
		views = append(views, newCartLineView(
			line.ProductID,
			line.Snapshot.Name,
			line.Quantity,
			line.Snapshot.Price,
			line.Snapshot.DiscountPrice,
			line.Snapshot.ImageKey,
		))
	}

	return &CartView{
		Lines:     views,
		ItemCount: domain.ItemCount(lines),
		Total:     domain.LinesTotal(lines),
	}
}

func newCartLineView(productID int64, name string, qty int, priceCents, discountCents int64, imageKey string) CartLineView {
	discount := domain.CentsToMoney(discountCents)

	return CartLineView{
		ProductID:     productID,
		Name:          name,
		Quantity:      qty,
		Price:         domain.CentsToMoney(priceCents),
		DiscountPrice: discount,
		ImageKey:      imageKey,
		LineTotal:     discount.Mul(decimal.NewFromInt(int64(qty))),
	}
}
