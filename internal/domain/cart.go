package domain

import "github.com/shopspring/decimal"

// ProductSnapshot — слепок товара на момент добавления в корзину.
// Не является источником истины по каталогу: цены для долговременной
// корзины пересчитываются по каталогу при подсчёте итога.
type ProductSnapshot struct {
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	DiscountPrice int64  `json:"discount_price"`
	CategoryID    int64  `json:"category_id"`
	ImageKey      string `json:"image_key"`
	IsOutOfStock  bool   `json:"is_out_of_stock"`
}

// CartLine — одна строка корзины: товар и количество.
// В cookie- и session-представлении строка несёт встроенный слепок товара,
// в базе данных хранится только ссылка на каталог.
type CartLine struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Snapshot  ProductSnapshot `json:"snapshot"`
}

// AddLine вливает товар в список строк: если строка для продукта уже есть,
// увеличивает её количество на qty и обновляет слепок, иначе добавляет
// новую строку. Внутри активного списка каждый product id встречается
// не более одного раза — инвариант поддерживается на записи.
func AddLine(lines []CartLine, product *Product, qty int) []CartLine {
	if qty <= 0 {
		return lines
	}

	for i := range lines {
		if lines[i].ProductID == product.ID {
			lines[i].Quantity += qty
			lines[i].Snapshot = product.Snapshot()
			return lines
		}
	}

	return append(lines, CartLine{
		ProductID: product.ID,
		Quantity:  qty,
		Snapshot:  product.Snapshot(),
	})
}

// RemoveLine удаляет все строки с указанным продуктом.
func RemoveLine(lines []CartLine, productID int64) []CartLine {
	out := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			out = append(out, line)
		}
	}

	return out
}

// DecrementLine уменьшает количество в строке продукта на единицу,
// при нуле строка удаляется целиком. Отсутствующий продукт — no-op.
func DecrementLine(lines []CartLine, productID int64) []CartLine {
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}

		lines[i].Quantity--
		if lines[i].Quantity <= 0 {
			return append(lines[:i], lines[i+1:]...)
		}
		return lines
	}

	return lines
}

// MergeLines группирует сырые строки по product id и возвращает по одной
// строке на продукт. Количество — сумма поля Quantity по группе: именно
// хранимое количество, а не число сырых записей (легаси-cookie может
// содержать дубликаты, но и тогда счётчик добавлений не теряется).
// Слепок берётся из первой встреченной строки продукта.
func MergeLines(lines []CartLine) []CartLine {
	merged := make([]CartLine, 0, len(lines))
	index := make(map[int64]int, len(lines))

	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}

		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}

		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	return merged
}

// ItemCount возвращает число сырых строк корзины (не суммарное количество).
func ItemCount(lines []CartLine) int {
	return len(lines)
}

// LinesTotal считает итог корзины по сгруппированным строкам:
// сумма discount_price * quantity, в денежных единицах.
func LinesTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range MergeLines(lines) {
		lineTotal := decimal.New(line.Snapshot.DiscountPrice, -2).
			Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
	}

	return total
}

// CentsToMoney переводит цену в центах в денежную величину.
func CentsToMoney(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
