package ledger

import (
	"github.com/jcastano/gestion-comercial/internal/domain/repository"
)

// Restore devuelve a los lotes las cantidades consumidas por un movimiento
// de salida: por cada fila de consumo suma QuantityConsumed al disponible
// del lote referenciado. Debe llamarse, por cada salida del pedido en
// edición, ANTES de borrar los movimientos; si no, la historia de consumo
// se pierde y el stock queda subestimado para siempre.
//
// Restore no es idempotente: el caller debe borrar el movimiento (y sus
// filas de consumo, en cascada) inmediatamente después, en la misma tx,
// para que nunca pueda correr dos veces sobre el mismo movimiento.
func Restore(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	movementID string,
) error {
	consumptions, err := movRepo.ListConsumptionsByMovement(movementID)
	if err != nil {
		return err
	}
	for _, c := range consumptions {
		if err := lotRepo.AdjustAvailability(c.LotID, c.QuantityConsumed); err != nil {
			return err
		}
	}
	return nil
}
