package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste una variante de producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, name, brand_id, model_id, manufacturer_id, packaging_id, color, flavor, cost_price, sale_price, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.BrandID, product.ModelID, product.ManufacturerID,
		product.PackagingID, product.Color, product.Flavor,
		product.CostPrice, product.SalePrice, product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, brand_id, model_id, manufacturer_id, COALESCE(packaging_id::text, ''),
		       color, flavor, cost_price, sale_price, created_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.BrandID, &p.ModelID, &p.ManufacturerID, &p.PackagingID,
		&p.Color, &p.Flavor, &p.CostPrice, &p.SalePrice, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

const productWithStockColumns = `
	SELECT p.id, p.name, p.brand_id, p.model_id, p.manufacturer_id, COALESCE(p.packaging_id::text, ''),
	       p.color, p.flavor, p.cost_price, p.sale_price, p.created_at,
	       b.name, md.name, mf.name, COALESCE(se.quantity, 0)
	FROM products p
	JOIN catalog_references b ON b.id = p.brand_id
	JOIN catalog_references md ON md.id = p.model_id
	JOIN catalog_references mf ON mf.id = p.manufacturer_id`

// ListWithStock lista productos con cantidad > 0 en el subsector.
func (r *ProductRepo) ListWithStock(ctx context.Context, subsectorID string) ([]entity.ProductWithStock, error) {
	query := productWithStockColumns + `
	JOIN stock_entries se ON se.product_id = p.id AND se.subsector_id = $1
	WHERE se.quantity > 0
	ORDER BY p.name`
	return r.queryProductsWithStock(ctx, query, subsectorID)
}

// ListAll lista todos los productos; la cantidad se resuelve para el
// subsector indicado (0 si no hay registro o si subsectorID es vacío).
func (r *ProductRepo) ListAll(ctx context.Context, subsectorID string) ([]entity.ProductWithStock, error) {
	query := productWithStockColumns + `
	LEFT JOIN stock_entries se ON se.product_id = p.id AND se.subsector_id = NULLIF($1, '')
	ORDER BY p.name`
	return r.queryProductsWithStock(ctx, query, subsectorID)
}

func (r *ProductRepo) queryProductsWithStock(ctx context.Context, query string, args ...any) ([]entity.ProductWithStock, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []entity.ProductWithStock
	for rows.Next() {
		var ps entity.ProductWithStock
		if err := rows.Scan(
			&ps.ID, &ps.Name, &ps.BrandID, &ps.ModelID, &ps.ManufacturerID, &ps.PackagingID,
			&ps.Color, &ps.Flavor, &ps.CostPrice, &ps.SalePrice, &ps.CreatedAt,
			&ps.BrandName, &ps.ModelName, &ps.ManufacturerName, &ps.Quantity,
		); err != nil {
			return nil, fmt.Errorf("scan product with stock: %w", err)
		}
		list = append(list, ps)
	}
	return list, rows.Err()
}

// GetInfo obtiene nombres desnormalizados de producto y subsector para los
// mensajes de notificación. Devuelve nil si producto o subsector no existen.
func (r *ProductRepo) GetInfo(ctx context.Context, productID, subsectorID string) (*entity.ProductInfo, error) {
	query := `
		SELECT p.id, p.name, b.name, md.name, ss.name, s.name
		FROM products p
		JOIN catalog_references b ON b.id = p.brand_id
		JOIN catalog_references md ON md.id = p.model_id
		CROSS JOIN subsectors ss
		JOIN sectors s ON s.id = ss.sector_id
		WHERE p.id = $1 AND ss.id = $2`
	var info entity.ProductInfo
	err := r.q.QueryRow(ctx, query, productID, subsectorID).Scan(
		&info.ProductID, &info.ProductName, &info.BrandName, &info.ModelName,
		&info.SubsectorName, &info.SectorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product info: %w", err)
	}
	return &info, nil
}
