package costing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain"
)

// InstallmentAmount calcula el monto de cada cuota: round(total/count, 2)
// para todas por igual. No se corrige el residuo de redondeo aquí; la capa
// de presentación lo expone tal cual.
func InstallmentAmount(totalWithFreight decimal.Decimal, count int) (decimal.Decimal, error) {
	if count <= 0 || totalWithFreight.LessThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return totalWithFreight.Div(decimal.NewFromInt(int64(count))).Round(2), nil
}

// InstallmentDueDates deriva los vencimientos del plan. Si explicit trae al
// menos count fechas se usan tal cual (truncadas a count); si no, se genera
// sumando un mes calendario por índice de secuencia a firstDueDate.
func InstallmentDueDates(firstDueDate time.Time, count int, explicit []time.Time) ([]time.Time, error) {
	if count <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(explicit) >= count {
		return explicit[:count], nil
	}
	dates := make([]time.Time, count)
	for i := 0; i < count; i++ {
		dates[i] = firstDueDate.AddDate(0, i, 0)
	}
	return dates, nil
}
