package usecase

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sleek-tech/storefront-backend/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type addCall struct {
	ownerID   string
	productID int64
	qty       int
}

type mockCartRepo struct {
	m        sync.Mutex
	addCalls []addCall
	lines    map[string][]domain.CartLine
	total    decimal.Decimal
	err      error
}

func (m *mockCartRepo) AddItem(_ context.Context, ownerID string, productID int64, qty int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.addCalls = append(m.addCalls, addCall{ownerID: ownerID, productID: productID, qty: qty})
	return nil
}

func (m *mockCartRepo) RemoveItem(_ context.Context, ownerID string, productID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.lines[ownerID] = domain.RemoveLine(m.lines[ownerID], productID)
	return nil
}

func (m *mockCartRepo) Clear(_ context.Context, ownerID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.lines, ownerID)
	return nil
}

func (m *mockCartRepo) GetLines(_ context.Context, ownerID string) ([]domain.CartLine, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.lines[ownerID], nil
}

func (m *mockCartRepo) ItemCount(_ context.Context, ownerID string) (int, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.lines[ownerID]), m.err
}

func (m *mockCartRepo) Total(_ context.Context, _ string) (decimal.Decimal, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return m.total, m.err
}

type mockSessionRepo struct {
	m     sync.Mutex
	carts map[string][]domain.CartLine
	err   error
}

func (m *mockSessionRepo) Get(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.carts[sessionID], nil
}

func (m *mockSessionRepo) Set(_ context.Context, sessionID string, lines []domain.CartLine) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.carts == nil {
		m.carts = make(map[string][]domain.CartLine)
	}
	m.carts[sessionID] = lines
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, sessionID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.carts, sessionID)
	return m.err
}

type mockProductRepo struct {
	m        sync.Mutex
	products map[int64]ProductInfo
	err      error
}

func (m *mockProductRepo) Upsert(_ context.Context, _ *domain.Product) (*UpsertProductRes, error) {
	return nil, nil
}

func (m *mockProductRepo) GetProductsInfo(_ context.Context, ids []int64) ([]ProductInfo, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var infos []ProductInfo
	for _, id := range ids {
		if info, ok := m.products[id]; ok {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

func (m *mockProductRepo) Search(_ context.Context, _ *SearchProductsReq) ([]ProductInfo, error) {
	return nil, nil
}

type mockCacheRepo struct {
	m        sync.Mutex
	products map[int64]ProductInfo
}

func (m *mockCacheRepo) GetProducts(_ context.Context, ids []int64) (map[int64]ProductInfo, error) {
	m.m.Lock()
	defer m.m.Unlock()
	found := make(map[int64]ProductInfo)
	for _, id := range ids {
		if info, ok := m.products[id]; ok {
			found[id] = info
		}
	}
	return found, nil
}

func (m *mockCacheRepo) SetProducts(_ context.Context, products []ProductInfo) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.products == nil {
		m.products = make(map[int64]ProductInfo)
	}
	for _, info := range products {
		m.products[info.ID] = info
	}
	return nil
}

func (m *mockCacheRepo) DeleteProducts(_ context.Context, ids []int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	for _, id := range ids {
		delete(m.products, id)
	}
	return nil
}

type mockOutboxRepo struct {
	m      sync.Mutex
	events []*OutboxEvent
	err    error
}

func (m *mockOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.events = append(m.events, event)
	return event, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*OutboxEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if limit > len(m.events) {
		limit = len(m.events)
	}
	return m.events[:limit], nil
}

func (m *mockOutboxRepo) MarkAsProcessed(_ context.Context, _ int64) error {
	return m.err
}

// fakeTx — транзакция-заглушка: usecase работает с ней только через
// Commit и Rollback, остальное не вызывается.
type fakeTx struct{}

func (fakeTx) Begin(_ context.Context) (pgx.Tx, error)    { return fakeTx{}, nil }
func (fakeTx) Commit(_ context.Context) error             { return nil }
func (fakeTx) Rollback(_ context.Context) error           { return nil }
func (fakeTx) Conn() *pgx.Conn                            { return nil }
func (fakeTx) LargeObjects() pgx.LargeObjects             { return pgx.LargeObjects{} }
func (fakeTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults {
	return nil
}
func (fakeTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (fakeTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (fakeTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

type fakeDB struct{}

func (fakeDB) BeginTx(_ context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	return fakeTx{}, nil
}
