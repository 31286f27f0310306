package domain

import (
	"math"
	"time"
)

// DurationHours длительность интервала в часах (дробная)
func DurationHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// CalculatePrice цена = длительность в часах * почасовая ставка
func CalculatePrice(start, end time.Time, hourlyRate float64) float64 {
	return DurationHours(start, end) * hourlyRate
}

// WithinTolerance переданная клиентом цена допустима, если отличается от расчетной не более чем на PriceTolerance
func WithinTolerance(calculated, provided float64) bool {
	return math.Abs(calculated-provided) <= PriceTolerance
}

// Overlaps проверяет пересечение интервалов [aStart, aEnd) и [bStart, bEnd).
// Сравнение строгое: соприкасающиеся интервалы не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ValidTimeRange начало строго раньше конца
func ValidTimeRange(start, end time.Time) bool {
	return start.Before(end)
}

// CheckPrice рассчитывает цену интервала и сверяет её с переданной клиентом.
// Возвращает расчетную цену или *PriceMismatchError
func CheckPrice(start, end time.Time, hourlyRate, provided float64) (float64, error) {
	calculated := CalculatePrice(start, end, hourlyRate)
	if !WithinTolerance(calculated, provided) {
		return calculated, &PriceMismatchError{Calculated: calculated, Provided: provided}
	}
	return calculated, nil
}
