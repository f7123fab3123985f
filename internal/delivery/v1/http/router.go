package http

import (
	"github.com/go-chi/chi/v5"
	_ "github.com/sleek-tech/storefront-backend/docs" // Импорт сгенерированных файлов
	"github.com/sleek-tech/storefront-backend/internal/cfg"
	"github.com/sleek-tech/storefront-backend/internal/repository/cookiecart"
	"github.com/sleek-tech/storefront-backend/internal/usecase"
	"github.com/sleek-tech/storefront-backend/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(prUC usecase.ProductUC, cartUC usecase.CartUC, cookies *cookiecart.Store, cartCfg *cfg.CartCfg) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(prUC, r.logger)
		registerProductRoutes(v1, prHandler)

		cartHandler := NewCartHandler(cartUC, cookies, cartCfg, r.logger)
		registerCartRoutes(v1, cartHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", prHandler.registerNewProduct)
		pr.Get("/", prHandler.getProducts)
		pr.Get("/search", prHandler.searchProducts)
	})
}

func registerCartRoutes(router chi.Router, cartHandler *CartHandler) {
	router.Route("/cart", func(cart chi.Router) {
		// Долговременная корзина вошедшего покупателя.
		cart.Get("/", cartHandler.getOwnerCart)
		cart.Delete("/", cartHandler.clearOwnerCart)
		cart.Post("/items/{productID}", cartHandler.addOwnerCartItem)
		cart.Delete("/items/{productID}", cartHandler.removeOwnerCartItem)
		cart.Post("/consolidate", cartHandler.consolidateCart)

		// Cookie-корзина анонимного покупателя.
		cart.Get("/cookie", cartHandler.getCookieCart)
		cart.Delete("/cookie", cartHandler.clearCookieCart)
		cart.Post("/cookie/items", cartHandler.addCookieCartItem)
		cart.Delete("/cookie/items/{productID}", cartHandler.removeCookieCartItem)

		// Сессионная корзина.
		cart.Get("/session", cartHandler.getSessionCart)
		cart.Post("/session/items/{productID}", cartHandler.addSessionCartItem)
		cart.Post("/session/items/{productID}/decrement", cartHandler.decrementSessionCartItem)
		cart.Delete("/session/items/{productID}", cartHandler.removeSessionCartItem)
	})
}
