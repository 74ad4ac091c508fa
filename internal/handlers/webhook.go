package handlers

import (
	"context"
	"net/http"
	"time"

	"filmapp/internal/models"
	"filmapp/internal/services"

	"github.com/sirupsen/logrus"
)

const eventTimeout = 30 * time.Second

// MessageProcessor handles one Telegram update.
type MessageProcessor interface {
	ProcessMessage(ctx context.Context, update *models.Update)
}

func WebhookHandler(processor MessageProcessor, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		update, err := services.ParseTelegramRequest(r)
		if err != nil {
			logger.WithError(err).Error("Error parsing request")
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), eventTimeout)
		defer cancel()
		processor.ProcessMessage(ctx, update)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
