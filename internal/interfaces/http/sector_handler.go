package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/estoqueapp/estoque-api/internal/application/dto"
	"github.com/estoqueapp/estoque-api/internal/application/sector"
	"github.com/estoqueapp/estoque-api/internal/domain"
)

// SectorHandler gestión de la jerarquía SuperSector > Sector > Subsector
// (protegido).
type SectorHandler struct {
	uc *sector.UseCase
}

// NewSectorHandler construye el handler.
func NewSectorHandler(uc *sector.UseCase) *SectorHandler {
	return &SectorHandler{uc: uc}
}

// CreateSuperSector crea un super sector.
func (h *SectorHandler) CreateSuperSector(c *fiber.Ctx) error {
	var in dto.CreateSuperSectorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.AddSuperSector(c.Context(), in.Name)
	if err != nil {
		return h.sectorError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// CreateSector crea un sector dentro de un super sector.
func (h *SectorHandler) CreateSector(c *fiber.Ctx) error {
	var in dto.CreateSectorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.AddSector(c.Context(), in.Name, in.SuperSectorID)
	if err != nil {
		return h.sectorError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// CreateSubsector crea un subsector dentro de un sector.
func (h *SectorHandler) CreateSubsector(c *fiber.Ctx) error {
	var in dto.CreateSubsectorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.AddSubsector(c.Context(), in.Name, in.SectorID)
	if err != nil {
		return h.sectorError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// ListSuperSectors lista todos los super sectores.
func (h *SectorHandler) ListSuperSectors(c *fiber.Ctx) error {
	list, err := h.uc.ListSuperSectors(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "super_sectors": list})
}

// ListSectors lista sectores; ?super_sector_id filtra.
func (h *SectorHandler) ListSectors(c *fiber.Ctx) error {
	list, err := h.uc.ListSectors(c.Context(), c.Query("super_sector_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "sectors": list})
}

// ListSubsectors lista subsectores con su ruta completa; ?sector_id filtra.
func (h *SectorHandler) ListSubsectors(c *fiber.Ctx) error {
	list, err := h.uc.ListSubsectors(c.Context(), c.Query("sector_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SubsectorResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.SubsectorResponse{
			ID:              p.ID,
			Name:            p.Name,
			SectorID:        p.SectorID,
			SectorName:      p.SectorName,
			SuperSectorName: p.SuperSectorName,
			FullName:        p.FullName(),
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "subsectors": out})
}

// GetSubsector obtiene un subsector con su ruta completa.
func (h *SectorHandler) GetSubsector(c *fiber.Ctx) error {
	p, err := h.uc.GetSubsector(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "subsector no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SubsectorResponse{
		ID:              p.ID,
		Name:            p.Name,
		SectorID:        p.SectorID,
		SectorName:      p.SectorName,
		SuperSectorName: p.SuperSectorName,
		FullName:        p.FullName(),
	})
}

func (h *SectorHandler) sectorError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre e identificador del padre son requeridos"})
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un elemento con ese nombre"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
