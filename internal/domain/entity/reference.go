package entity

import "time"

// ReferenceKind identifica las tablas de referencia del catálogo que comparten
// la restricción de unicidad por nombre. Variante etiquetada en lugar de
// interpolar nombres de tabla.
type ReferenceKind string

const (
	ReferenceBrand        ReferenceKind = "BRAND"
	ReferenceModel        ReferenceKind = "MODEL"
	ReferenceManufacturer ReferenceKind = "MANUFACTURER"
	ReferencePackaging    ReferenceKind = "PACKAGING"
)

// IsValid indica si el kind pertenece al catálogo.
func (k ReferenceKind) IsValid() bool {
	switch k {
	case ReferenceBrand, ReferenceModel, ReferenceManufacturer, ReferencePackaging:
		return true
	}
	return false
}

// Reference es una entrada del catálogo de referencias (marca, modelo,
// fabricante o tipo de embalaje). NormalizedName se usa para la unicidad
// insensible a mayúsculas y acentos.
type Reference struct {
	ID             string
	Kind           ReferenceKind
	Name           string
	NormalizedName string
	CreatedAt      time.Time
}
