package entity

import "time"

// User operador de la aplicación. Cada operador trabaja atado a un subsector
// fijo; el token JWT emitido en el login lleva ese subsector.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	SubsectorID  string
	Role         string // "admin" | "operador"
	CreatedAt    time.Time
}
