package notification

import (
	"context"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// Dispatcher puerto de envío de alertas locales. Contrato de mejor esfuerzo:
// la entrega nunca bloquea ni falla al caller; sin permiso/destino
// configurado se omite en silencio.
type Dispatcher interface {
	Send(ctx context.Context, title, body string, metadata map[string]string)
}

// titleForKind título de la alerta local según el tipo.
func titleForKind(kind string) string {
	switch kind {
	case entity.KindStockLow:
		return "⚠️ Stock bajo"
	case entity.KindStockHigh:
		return "📈 Stock alto"
	case entity.KindStockZero:
		return "🚨 Stock agotado"
	case entity.KindProductExpiring:
		return "⏰ Producto por vencer"
	default:
		return "📱 Alerta de stock"
	}
}
