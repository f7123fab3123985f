package cookiecart

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sleek-tech/storefront-backend/internal/cfg"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/pkg/logger"
)

// envelopeVersion — версия формата cookie. При смене схемы строк
// старые cookie просто сбрасываются в пустую корзину.
const envelopeVersion = 1

type envelope struct {
	V     int               `json:"v"`
	Lines []domain.CartLine `json:"lines"`
}

// Store читает и переписывает корзину анонимного покупателя в cookie.
// Значение хранится как base64 от версионированного JSON-конверта.
type Store struct {
	cfg    *cfg.CartCfg
	logger logger.Logger
}

func NewStore(cfg *cfg.CartCfg, logger logger.Logger) *Store {
	return &Store{
		cfg:    cfg,
		logger: logger,
	}
}

// Read возвращает сырые строки корзины из cookie запроса. Любой сбой
// чтения или декодирования трактуется как пустая корзина: анонимный
// покупатель никогда не должен получать ошибку из-за испорченной cookie.
func (s *Store) Read(r *http.Request) []domain.CartLine {
	cookie, err := r.Cookie(s.cfg.CookieName)
	if err != nil {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		s.logger.Warnf("cart cookie base64 decode failed, resetting: %v", err)
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.Warnf("cart cookie decode failed, resetting: %v", err)
		return nil
	}

	if env.V != envelopeVersion {
		s.logger.Warnf("cart cookie has unknown version %d, resetting", env.V)
		return nil
	}

	return env.Lines
}

// Write переписывает cookie целиком и продлевает срок её жизни.
func (s *Store) Write(w http.ResponseWriter, lines []domain.CartLine) error {
	data, err := json.Marshal(envelope{V: envelopeVersion, Lines: lines})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.CookieTTL),
		MaxAge:   int(s.cfg.CookieTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Clear удаляет cookie корзины. Вызывается только после успешной
// миграции строк в долговременную корзину.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
