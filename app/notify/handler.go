package notify

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/agencia1/merch-catalog/app/api"
)

type Response struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	EmailData Message `json:"emailData"`
}

type EmailHandler struct {
	mailer    Mailer
	defaultTo string
	logger    *slog.Logger
}

func NewEmailHandler(m Mailer, defaultTo string) *EmailHandler {
	return &EmailHandler{
		mailer:    m,
		defaultTo: defaultTo,
		logger:    slog.Default(),
	}
}

func (h *EmailHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	msg, err := Compose(req, h.defaultTo)
	if errors.Is(err, ErrUnsupportedType) {
		api.WriteError(w, http.StatusBadRequest, "Unsupported email type")
		return
	}
	if err != nil {
		api.InternalError(w, h.logger, "Error al enviar el correo", err)
		return
	}

	if err := h.mailer.Send(r.Context(), msg); err != nil {
		api.InternalError(w, h.logger, "Error al enviar el correo", err)
		return
	}

	api.WriteJSON(w, http.StatusOK, Response{
		Success:   true,
		Message:   "Correo enviado exitosamente",
		EmailData: msg,
	})
}
