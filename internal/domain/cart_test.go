package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id int64, priceCents int64) *Product {
	return &Product{
		ID:            id,
		Name:          "product",
		Price:         priceCents,
		DiscountPrice: priceCents,
		CategoryID:    1,
	}
}

func TestAddLine_RepeatedAddGrowsQuantity(t *testing.T) {
	product := testProduct(1, 800)

	var lines []CartLine
	for i := 0; i < 5; i++ {
		lines = AddLine(lines, product, 1)
	}

	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddLine_DistinctProductsGetOwnLines(t *testing.T) {
	var lines []CartLine
	lines = AddLine(lines, testProduct(1, 800), 1)
	lines = AddLine(lines, testProduct(2, 500), 3)

	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ProductID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, int64(2), lines[1].ProductID)
	assert.Equal(t, 3, lines[1].Quantity)
}

func TestAddLine_RefreshesSnapshot(t *testing.T) {
	stale := testProduct(1, 800)
	lines := AddLine(nil, stale, 1)

	fresh := testProduct(1, 600)
	fresh.Name = "renamed"
	lines = AddLine(lines, fresh, 1)

	require.Len(t, lines, 1)
	assert.Equal(t, "renamed", lines[0].Snapshot.Name)
	assert.Equal(t, int64(600), lines[0].Snapshot.Price)
}

func TestAddLine_NonPositiveQuantityIsNoop(t *testing.T) {
	lines := AddLine(nil, testProduct(1, 800), 0)
	assert.Empty(t, lines)

	lines = AddLine(lines, testProduct(1, 800), -3)
	assert.Empty(t, lines)
}

func TestRemoveLine_RemovesAllMatches(t *testing.T) {
	// Легаси-cookie может содержать дубликаты строк одного товара.
	lines := []CartLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 3},
	}

	lines = RemoveLine(lines, 1)

	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ProductID)
}

func TestDecrementLine(t *testing.T) {
	lines := []CartLine{{ProductID: 1, Quantity: 2}}

	lines = DecrementLine(lines, 1)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	// При нуле строка удаляется целиком.
	lines = DecrementLine(lines, 1)
	assert.Empty(t, lines)

	// Отсутствующий продукт — no-op.
	lines = DecrementLine(lines, 42)
	assert.Empty(t, lines)
}

func TestMergeLines_SumsQuantityField(t *testing.T) {
	// Две сырые строки одного товара с количеством 2 и 3: группа несёт
	// 5 единиц, а не 2 записи.
	lines := []CartLine{
		{ProductID: 1, Quantity: 2, Snapshot: ProductSnapshot{Name: "first"}},
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 3, Snapshot: ProductSnapshot{Name: "second"}},
	}

	merged := MergeLines(lines)

	require.Len(t, merged, 2)
	assert.Equal(t, 5, merged[0].Quantity)
	// Слепок берётся из первой встреченной строки.
	assert.Equal(t, "first", merged[0].Snapshot.Name)
}

func TestMergeLines_SkipsNonPositiveQuantities(t *testing.T) {
	lines := []CartLine{
		{ProductID: 1, Quantity: 0},
		{ProductID: 2, Quantity: -1},
		{ProductID: 3, Quantity: 1},
	}

	merged := MergeLines(lines)

	require.Len(t, merged, 1)
	assert.Equal(t, int64(3), merged[0].ProductID)
}

func TestLinesTotal(t *testing.T) {
	// Товар по 8.00 с количеством 2: итог 16.00, сырых строк одна.
	lines := AddLine(nil, testProduct(1, 800), 2)

	assert.Equal(t, 1, ItemCount(lines))
	assert.True(t, LinesTotal(lines).Equal(decimal.RequireFromString("16.00")),
		"got %s", LinesTotal(lines))
}

func TestLinesTotal_GroupsDuplicatesBeforeSumming(t *testing.T) {
	lines := []CartLine{
		{ProductID: 1, Quantity: 1, Snapshot: ProductSnapshot{DiscountPrice: 500}},
		{ProductID: 1, Quantity: 1, Snapshot: ProductSnapshot{DiscountPrice: 500}},
		{ProductID: 2, Quantity: 1, Snapshot: ProductSnapshot{DiscountPrice: 300}},
	}

	assert.True(t, LinesTotal(lines).Equal(decimal.RequireFromString("13.00")),
		"got %s", LinesTotal(lines))
}

func TestCentsToMoney(t *testing.T) {
	assert.Equal(t, "5.99", CentsToMoney(599).StringFixed(2))
	assert.Equal(t, "0.00", CentsToMoney(0).StringFixed(2))
}
