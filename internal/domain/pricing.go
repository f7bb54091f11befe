package domain

// LineTotalMinor возвращает стоимость одной позиции: qty * цена за единицу.
func LineTotalMinor(qty int32, priceMinor int64) int64 {
	return int64(qty) * priceMinor
}

// TotalMinor суммирует стоимость позиций в минимальных денежных единицах.
// Для пустого набора возвращает ноль. Порядок позиций не влияет на результат.
func TotalMinor(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += LineTotalMinor(item.Qty, item.PriceMinor)
	}
	return total
}
