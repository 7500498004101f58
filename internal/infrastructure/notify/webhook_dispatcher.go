package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/estoqueapp/estoque-api/internal/application/notification"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

var _ notification.Dispatcher = (*WebhookDispatcher)(nil)

// WebhookDispatcher envía alertas como POST JSON a un webhook configurado.
// Mejor esfuerzo: el envío corre en su propia goroutine con timeout y los
// fallos solo se registran. URL vacía = canal deshabilitado, se omite en
// silencio.
type WebhookDispatcher struct {
	url    string
	client *http.Client
	log    *logger.Logger
}

// NewWebhookDispatcher construye el dispatcher. url vacía deshabilita el envío.
func NewWebhookDispatcher(url string, log *logger.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

type webhookPayload struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Metadata map[string]string `json:"metadata,omitempty"`
	SentAt   time.Time         `json:"sent_at"`
}

// Send publica la alerta sin bloquear al caller. Nunca devuelve error.
func (d *WebhookDispatcher) Send(ctx context.Context, title, body string, metadata map[string]string) {
	if d.url == "" {
		return
	}

	payload, err := json.Marshal(webhookPayload{
		Title:    title,
		Body:     body,
		Metadata: metadata,
		SentAt:   time.Now(),
	})
	if err != nil {
		d.log.Warn().Err(err).Msg("notify: fallo serializando alerta")
		return
	}

	// Desacoplado del ciclo de vida del request que originó la alerta
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
		if err != nil {
			d.log.Warn().Err(err).Msg("notify: fallo armando request del webhook")
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.client.Do(req)
		if err != nil {
			d.log.Warn().Err(err).Str("title", title).Msg("notify: fallo enviando alerta al webhook")
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			d.log.Warn().Int("status", resp.StatusCode).Str("title", title).Msg("notify: webhook respondió con error")
			return
		}
		d.log.Debug().Str("title", title).Msg("notify: alerta enviada")
	}()
}
