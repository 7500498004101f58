package repository

import (
	"context"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por
// producto+subsector. Toda mutación de stock pasa por el Stock Ledger; ningún
// otro componente escribe estas filas directamente.
type StockRepository interface {
	Get(ctx context.Context, productID, subsectorID string) (*entity.StockEntry, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) dentro de
	// una transacción; devuelve nil si no existe registro.
	GetForUpdate(ctx context.Context, productID, subsectorID string) (*entity.StockEntry, error)
	Upsert(ctx context.Context, entry *entity.StockEntry) error
}
