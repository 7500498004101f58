package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/estoqueapp/estoque-api/internal/application/catalog"
	"github.com/estoqueapp/estoque-api/internal/application/dto"
	"github.com/estoqueapp/estoque-api/internal/application/product"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// ProductHandler registro y consulta de productos y del catálogo de
// referencias (protegido).
type ProductHandler struct {
	uc        *product.UseCase
	catalogUC *catalog.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *product.UseCase, catalogUC *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc, catalogUC: catalogUC}
}

// Register da de alta una variante de producto. Marca, modelo, fabricante y
// embalaje se resuelven o crean por nombre en el catálogo.
func (h *ProductHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Register(c.Context(), product.RegisterInput{
		Name:             in.Name,
		BrandName:        in.BrandName,
		ModelName:        in.ModelName,
		ManufacturerName: in.ManufacturerName,
		PackagingName:    in.PackagingName,
		Color:            in.Color,
		Flavor:           in.Flavor,
		CostPrice:        in.CostPrice,
		SalePrice:        in.SalePrice,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre, marca, modelo y fabricante son requeridos; precios no negativos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetByID obtiene un producto por ID.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(p)
}

// List lista productos. ?with_stock=true limita a los que tienen stock en el
// subsector; ?subsector_id resuelve cantidades para esa ubicación.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	subsectorID := c.Query("subsector_id", GetSubsectorID(c))

	var (
		list []entity.ProductWithStock
		err  error
	)
	if c.QueryBool("with_stock") {
		list, err = h.uc.ListWithStock(c.Context(), subsectorID)
	} else {
		list, err = h.uc.ListAll(c.Context(), subsectorID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "subsector_id requerido para filtrar por stock"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.ProductResponse, 0, len(list))
	for _, ps := range list {
		out = append(out, dto.ProductResponse{
			ID:               ps.ID,
			Name:             ps.Name,
			BrandName:        ps.BrandName,
			ModelName:        ps.ModelName,
			ManufacturerName: ps.ManufacturerName,
			Color:            ps.Color,
			Flavor:           ps.Flavor,
			CostPrice:        ps.CostPrice,
			SalePrice:        ps.SalePrice,
			Quantity:         ps.Quantity,
			CreatedAt:        ps.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "products": out})
}

// ListReferences lista las referencias del catálogo de un kind (BRAND, MODEL,
// MANUFACTURER, PACKAGING).
func (h *ProductHandler) ListReferences(c *fiber.Ctx) error {
	kind := entity.ReferenceKind(c.Params("kind"))
	list, err := h.catalogUC.ListByKind(c.Context(), kind)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind debe ser BRAND, MODEL, MANUFACTURER o PACKAGING"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "references": list})
}
