package handler

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/fabioverbena/Event-Manager/internal/application/service"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/request"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/response"
	"github.com/fabioverbena/Event-Manager/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// bindJSON binds the body into req. On failure it writes the error response
// and returns false; the caller must return without writing again.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.ValidationError(c, request.FieldErrors(verrs))
			return false
		}
		response.BadRequest(c, "Richiesta non valida")
		return false
	}
	return true
}

// parseID reads the :id path parameter
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID non valido")
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page and per_page; out of range values are clamped later
func pageParams(c *gin.Context) *pagination.PaginationParams {
	return &pagination.PaginationParams{
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
	}
}

// queryInt returns the integer query value, or 0 when absent or malformed
func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

// maxUploadSize bounds CSV imports
const maxUploadSize = 5 << 20

// uploadedFile opens the multipart field "file"
func uploadedFile(c *gin.Context) (multipart.File, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File mancante")
		return nil, false
	}
	if header.Size > maxUploadSize {
		response.BadRequest(c, "File troppo grande (massimo 5 MB)")
		return nil, false
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return file, true
}

func sendFile(c *gin.Context, f *service.File) {
	response.Attachment(c, f.Name, f.ContentType, f.Content)
}
