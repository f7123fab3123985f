package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sleek-tech/storefront-backend/internal/cfg"
	"github.com/sleek-tech/storefront-backend/internal/repository/cookiecart"
	"github.com/sleek-tech/storefront-backend/internal/usecase"
	"github.com/sleek-tech/storefront-backend/pkg/e"
	"github.com/sleek-tech/storefront-backend/pkg/logger"
)

// ownerIDHeader передаёт идентификатор вошедшего покупателя. Его
// проставляет вышестоящий шлюз после аутентификации.
const ownerIDHeader = "X-Owner-ID"

type CartHandler struct {
	cartUsecase usecase.CartUC
	cookies     *cookiecart.Store
	cfg         *cfg.CartCfg
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, cookies *cookiecart.Store, cfg *cfg.CartCfg, logger logger.Logger) *CartHandler {
	return &CartHandler{
		cartUsecase: cartUsecase,
		cookies:     cookies,
		cfg:         cfg,
		logger:      logger,
	}
}

type addCookieItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// getCookieCart
//
//	@Summary		Корзина анонимного покупателя
//	@Description	Возвращает агрегированное представление cookie-корзины
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartResponse
//	@Router			/cart/cookie [get]
func (c *CartHandler) getCookieCart(w http.ResponseWriter, r *http.Request) {
	lines := c.cookies.Read(r)
	view := c.cartUsecase.CookieCartView(lines)
	WriteSuccess(w, http.StatusOK, NewCartResponse(view))
}

// addCookieCartItem
//
//	@Summary		Добавление товара в cookie-корзину
//	@Description	Добавляет товар и переписывает cookie с продлением срока жизни
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body		addCookieItemRequest	true	"Товар и количество"
//	@Success		200		{object}	CartResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse	"Товара нет в наличии"
//	@Router			/cart/cookie/items [post]
func (c *CartHandler) addCookieCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCookieItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.ErrStatusBadRequest)
		return
	}
	if req.ProductID <= 0 {
		WriteError(w, e.ErrInvalidProductID)
		return
	}

	lines := c.cookies.Read(r)
	updated, err := c.cartUsecase.AddToCookieCart(r.Context(), usecase.NewCookieAddReq(req.ProductID, req.Quantity, lines))
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if err := c.cookies.Write(w, updated); err != nil {
		c.logger.Warnf("failed to write cart cookie: %s", err.Error())
		WriteError(w, e.ErrInternalServerError)
		return
	}

	WriteSuccess(w, http.StatusOK, NewCartResponse(c.cartUsecase.CookieCartView(updated)))
}

// removeCookieCartItem
//
//	@Summary		Удаление товара из cookie-корзины
//	@Description	Убирает все записи товара и переписывает cookie
//	@Tags			cart
//	@Produce		json
//	@Param			productID	path		integer	true	"Идентификатор товара"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/cart/cookie/items/{productID} [delete]
func (c *CartHandler) removeCookieCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(chi.URLParam(r, "productID"))
	if err != nil {
		WriteError(w, err)
		return
	}

	lines := c.cookies.Read(r)
	updated := c.cartUsecase.RemoveFromCookieCart(lines, productID)
	if err := c.cookies.Write(w, updated); err != nil {
		c.logger.Warnf("failed to write cart cookie: %s", err.Error())
		WriteError(w, e.ErrInternalServerError)
		return
	}

	WriteSuccess(w, http.StatusOK, NewCartResponse(c.cartUsecase.CookieCartView(updated)))
}

// clearCookieCart
//
//	@Summary		Очистка cookie-корзины
//	@Tags			cart
//	@Produce		json
//	@Success		204	"Корзина очищена"
//	@Router			/cart/cookie [delete]
func (c *CartHandler) clearCookieCart(w http.ResponseWriter, r *http.Request) {
	c.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// getSessionCart
//
//	@Summary		Сессионная корзина
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartResponse
//	@Router			/cart/session [get]
func (c *CartHandler) getSessionCart(w http.ResponseWriter, r *http.Request) {
	sessionID := c.ensureSession(w, r)

	view, err := c.cartUsecase.SessionCartView(r.Context(), sessionID)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewCartResponse(view))
}

// addSessionCartItem
//
//	@Summary		Добавление товара в сессионную корзину
//	@Tags			cart
//	@Produce		json
//	@Param			productID	path		integer	true	"Идентификатор товара"
//	@Success		204			"Товар добавлен"
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse	"Товара нет в наличии"
//	@Router			/cart/session/items/{productID} [post]
func (c *CartHandler) addSessionCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(chi.URLParam(r, "productID"))
	if err != nil {
		WriteError(w, err)
		return
	}

	sessionID := c.ensureSession(w, r)
	if err := c.cartUsecase.AddToSessionCart(r.Context(), sessionID, productID); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decrementSessionCartItem
//
//	@Summary		Уменьшение количества товара на единицу
//	@Description	Строка с нулевым количеством удаляется из корзины
//	@Tags			cart
//	@Produce		json
//	@Param			productID	path	integer	true	"Идентификатор товара"
//	@Success		204			"Количество уменьшено"
//	@Failure		400			{object}	ErrorResponse
//	@Router			/cart/session/items/{productID}/decrement [post]
func (c *CartHandler) decrementSessionCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(chi.URLParam(r, "productID"))
	if err != nil {
		WriteError(w, err)
		return
	}

	sessionID := c.ensureSession(w, r)
	if err := c.cartUsecase.DecrementSessionCart(r.Context(), sessionID, productID); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removeSessionCartItem
//
//	@Summary		Удаление товара из сессионной корзины
//	@Tags			cart
//	@Produce		json
//	@Param			productID	path	integer	true	"Идентификатор товара"
//	@Success		204			"Товар удалён"
//	@Failure		400			{object}	ErrorResponse
//	@Router			/cart/session/items/{productID} [delete]
func (c *CartHandler) removeSessionCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := parseProductID(chi.URLParam(r, "productID"))
	if err != nil {
		WriteError(w, err)
		return
	}

	sessionID := c.ensureSession(w, r)
	if err := c.cartUsecase.RemoveFromSessionCart(r.Context(), sessionID, productID); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getOwnerCart
//
//	@Summary		Долговременная корзина покупателя
//	@Tags			cart
//	@Produce		json
//	@Param			X-Owner-ID	header		string	true	"Идентификатор покупателя"
//	@Success		200			{object}	CartResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/cart [get]
func (c *CartHandler) getOwnerCart(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := c.cartUsecase.OwnerCartView(r.Context(), ownerID)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewCartResponse(view))
}

// addOwnerCartItem
//
//	@Summary		Добавление товара в долговременную корзину
//	@Tags			cart
//	@Produce		json
//	@Param			X-Owner-ID	header	string	true	"Идентификатор покупателя"
//	@Param			productID	path	integer	true	"Идентификатор товара"
//	@Success		204			"Товар добавлен"
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse	"Товара нет в наличии"
//	@Router			/cart/items/{productID} [post]
func (c *CartHandler) addOwnerCartItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := parseProductID(chi.URLParam(r, "productID"))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.cartUsecase.AddToOwnerCart(r.Context(), ownerID, productID); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removeOwnerCartItem
//
//	@Summary		Удаление товара из долговременной корзины
//	@Tags			cart
//	@Produce		json
//	@Param			X-Owner-ID	header	string	true	"Идентификатор покупателя"
//	@Param			productID	path	integer	true	"Идентификатор товара"
//	@Success		204			"Товар удалён"
//	@Failure		400			{object}	ErrorResponse
//	@Router			/cart/items/{productID} [delete]
func (c *CartHandler) removeOwnerCartItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := parseProductID(chi.URLParam(r, "productID"))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.cartUsecase.RemoveFromOwnerCart(r.Context(), ownerID, productID); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// clearOwnerCart
//
//	@Summary		Очистка долговременной корзины
//	@Tags			cart
//	@Produce		json
//	@Param			X-Owner-ID	header	string	true	"Идентификатор покупателя"
//	@Success		204			"Корзина очищена"
//	@Failure		400			{object}	ErrorResponse
//	@Router			/cart [delete]
func (c *CartHandler) clearOwnerCart(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := c.cartUsecase.ClearOwnerCart(r.Context(), ownerID); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// consolidateCart
//
//	@Summary		Перенос cookie-корзины в долговременную
//	@Description	Вызывается после входа покупателя. Cookie удаляется только после успешного переноса.
//	@Tags			cart
//	@Produce		json
//	@Param			X-Owner-ID	header		string	true	"Идентификатор покупателя"
//	@Success		200			{object}	ConsolidateResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/cart/consolidate [post]
func (c *CartHandler) consolidateCart(w http.ResponseWriter, r *http.Request) {
	ownerID, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	lines := c.cookies.Read(r)
	if err := c.cartUsecase.Consolidate(r.Context(), ownerID, lines); err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	// Cookie стирается только после успешного переноса: при сбое
	// покупатель не теряет содержимое анонимной корзины.
	c.cookies.Clear(w)
	WriteSuccess(w, http.StatusOK, ConsolidateResponse{Migrated: len(lines) > 0})
}

// ensureSession возвращает идентификатор сессии из cookie, при
// отсутствии выпускает новый и проставляет cookie.
func (c *CartHandler) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(c.cfg.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     c.cfg.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sessionID
}

func ownerID(r *http.Request) (string, error) {
	id := r.Header.Get(ownerIDHeader)
	if id == "" {
		return "", e.ErrMissingOwnerID
	}

	return id, nil
}
