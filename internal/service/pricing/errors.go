package pricing

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidRange = fmt.Errorf("%w: pricing: end date must be after start date", domain.ErrRange)

	// ErrNegativeRate возвращается при отрицательной цене за ночь
	ErrNegativeRate = fmt.Errorf("%w: pricing: nightly rate must not be negative", domain.ErrRange)

	// ErrTotalTooLarge возвращается, когда итоговая стоимость не помещается в total_price
	ErrTotalTooLarge = fmt.Errorf("%w: pricing: total price exceeds the maximum", domain.ErrRange)
)
