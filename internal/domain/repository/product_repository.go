package repository

import (
	"context"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para variantes de producto.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// ListWithStock productos con cantidad > 0 en el subsector.
	ListWithStock(ctx context.Context, subsectorID string) ([]entity.ProductWithStock, error)
	// ListAll todos los productos; si subsectorID no es vacío la cantidad se
	// resuelve para ese subsector (0 si no hay registro).
	ListAll(ctx context.Context, subsectorID string) ([]entity.ProductWithStock, error)
	// GetInfo nombres desnormalizados de producto y subsector para generar
	// mensajes de notificación.
	GetInfo(ctx context.Context, productID, subsectorID string) (*entity.ProductInfo, error)
}
