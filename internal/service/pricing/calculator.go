package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Quote расчет стоимости проживания
type Quote struct {
	Nights      int
	NightlyRate decimal.Decimal
	Total       decimal.Decimal
}

// Calculator считает стоимость бронирования: цена за ночь * количество ночей
// Не имеет состояния и побочных эффектов
type Calculator struct{}

// NewCalculator создает калькулятор стоимости
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Quote считает количество ночей по календарным дням (время суток не учитывается)
// и итоговую стоимость, округленную до domain.PriceScale знаков
// Стоимость больше domain.MaxBookingTotal - ErrTotalTooLarge
func (c *Calculator) Quote(nightlyRate decimal.Decimal, start, end time.Time) (*Quote, error) {
	if nightlyRate.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", ErrNegativeRate, nightlyRate.String())
	}

	nights := domain.CalendarDays(start, end)
	if nights <= 0 {
		return nil, fmt.Errorf("%w: %s - %s gives %d nights", ErrInvalidRange,
			start.Format(domain.DateFormat), end.Format(domain.DateFormat), nights)
	}

	total := nightlyRate.Mul(decimal.NewFromInt(int64(nights))).Round(domain.PriceScale)
	if total.GreaterThan(domain.MaxBookingTotal) {
		return nil, fmt.Errorf("%w: %d nights at %s", ErrTotalTooLarge, nights, nightlyRate.String())
	}

	return &Quote{
		Nights:      nights,
		NightlyRate: nightlyRate,
		Total:       total,
	}, nil
}

// ComputeTotal возвращает только итоговую стоимость
func (c *Calculator) ComputeTotal(nightlyRate decimal.Decimal, start, end time.Time) (decimal.Decimal, error) {
	quote, err := c.Quote(nightlyRate, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return quote.Total, nil
}
