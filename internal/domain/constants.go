package domain

// Пагинация (skip/take)
const (
	DefaultSkip = 0
	DefaultTake = 10
	MaxTake     = 100
)

// Ограничения отзывов
const (
	MinRating           = 1
	MaxRating           = 5
	MinReviewCommentLen = 10
	MaxReviewCommentLen = 500
)

// PriceTolerance допустимое расхождение между рассчитанной и переданной ценой (в денежных единицах)
const PriceTolerance = 1.0

// Прочие ограничения
const (
	MaxNotesLength   = 500
	MaxMessageLength = 2000
)

// Page параметры пагинации
type Page struct {
	Skip int
	Take int
}

// Normalize подставляет значения по умолчанию и ограничивает take
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = DefaultSkip
	}
	if p.Take <= 0 {
		p.Take = DefaultTake
	}
	if p.Take > MaxTake {
		p.Take = MaxTake
	}
	return p
}
