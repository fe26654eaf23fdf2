package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jcastano/gestion-comercial/internal/domain"
)

// AllocateFreight prorratea un flete único entre las líneas de una compra,
// proporcional a la cantidad: share_i = round(flete * qty_i / Σqty, 2).
// Como el redondeo independiente puede desviar la suma, la diferencia
// restante se suma a la línea de mayor cantidad (primera aparición en caso
// de empate). Garantiza sum(shares) == freightTotal al centavo, sin
// redistribución iterativa.
func AllocateFreight(freightTotal decimal.Decimal, quantities []decimal.Decimal) ([]decimal.Decimal, error) {
	if len(quantities) == 0 || freightTotal.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	totalQty := decimal.Zero
	for _, q := range quantities {
		if !q.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		totalQty = totalQty.Add(q)
	}

	shares := make([]decimal.Decimal, len(quantities))
	sum := decimal.Zero
	largest := 0
	for i, q := range quantities {
		shares[i] = freightTotal.Mul(q).Div(totalQty).Round(2)
		sum = sum.Add(shares[i])
		if q.GreaterThan(quantities[largest]) {
			largest = i
		}
	}

	// Corrección determinista del residuo de redondeo
	leftover := freightTotal.Sub(sum)
	if !leftover.IsZero() {
		shares[largest] = shares[largest].Add(leftover)
	}
	return shares, nil
}
