package notification

import "context"

// UnreadCounterCache cache opcional del contador de no leídas (el badge de la
// app consulta este número con mucha frecuencia). nil = sin cache; el
// historial sigue siendo la fuente de verdad.
type UnreadCounterCache interface {
	GetUnread(ctx context.Context) (int64, bool)
	SetUnread(ctx context.Context, count int64)
	Invalidate(ctx context.Context)
}
