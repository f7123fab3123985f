package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jimlawless/whereami"
	"github.com/redis/go-redis/v9"
	"github.com/sleek-tech/storefront-backend/internal/cfg"
	"github.com/sleek-tech/storefront-backend/internal/domain"
	"github.com/sleek-tech/storefront-backend/pkg/clients"
	"github.com/sleek-tech/storefront-backend/pkg/e"
	"github.com/sleek-tech/storefront-backend/pkg/logger"
)

// SessionCartRepo хранит сессионные корзины в Redis. Каждая корзина
// живёт под собственным ключом и продлевается при каждой записи.
type SessionCartRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewSessionCartRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *SessionCartRepo {
	return &SessionCartRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Get возвращает сырые строки сессионной корзины. Отсутствующий ключ
// и повреждённые данные трактуются как пустая корзина.
func (r *SessionCartRepo) Get(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	data, err := r.client.Client.Get(ctx, r.sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		r.logger.Warnf("session cart decode failed, resetting (session: %s): %v", sessionID, err)
		return nil, nil
	}

	return lines, nil
}

// Set переписывает корзину целиком и продлевает TTL сессии.
func (r *SessionCartRepo) Set(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := r.client.Client.Set(ctx, r.sessionKey(sessionID), data, r.cfg.SessionTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет сессионную корзину.
func (r *SessionCartRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Client.Del(ctx, r.sessionKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *SessionCartRepo) sessionKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
