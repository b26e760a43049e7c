package handler

import (
	"github.com/fabioverbena/Event-Manager/internal/application/service"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/request"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

type currentEventView struct {
	NomeEvento string `json:"nome_evento"`
	Impostato  bool   `json:"impostato"`
}

// GetCurrentEvent returns the fair name used to pre-fill new orders
func (h *SettingsHandler) GetCurrentEvent(c *gin.Context) {
	name, ok, err := h.settingsService.CurrentEvent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Evento corrente", currentEventView{NomeEvento: name, Impostato: ok})
}

// SetCurrentEvent stores the current fair name
func (h *SettingsHandler) SetCurrentEvent(c *gin.Context) {
	var req request.SettingsEventRequest
	if !bindJSON(c, &req) {
		return
	}

	name, err := h.settingsService.SetCurrentEvent(c.Request.Context(), req.NomeEvento)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Evento corrente aggiornato", currentEventView{NomeEvento: name, Impostato: true})
}

// ClearCurrentEvent removes the current fair name
func (h *SettingsHandler) ClearCurrentEvent(c *gin.Context) {
	if err := h.settingsService.ClearCurrentEvent(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
