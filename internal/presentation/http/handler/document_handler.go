package handler

import (
	"strings"

	"github.com/fabioverbena/Event-Manager/internal/application/service"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/response"
	"github.com/fabioverbena/Event-Manager/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// DocumentHandler serves the documents not tied to a single order
type DocumentHandler struct {
	documents *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// BlankForm handles rendering an empty paper order form
func (h *DocumentHandler) BlankForm(c *gin.Context) {
	f, err := h.documents.BlankFormPDF(c.Request.Context(), c.Query("tipo"), queryInt(c, "copie"), c.Query("leasing"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, f)
}

// LeasingMatch shows which leasing model a product name maps to
func (h *DocumentHandler) LeasingMatch(c *gin.Context) {
	name := strings.TrimSpace(c.Query("nome"))
	if name == "" {
		response.Error(c, apperror.NewFieldError("nome", apperror.MsgRequiredField))
		return
	}

	response.OK(c, "Modello leasing", h.documents.MatchLeasing(name))
}
