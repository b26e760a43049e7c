package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/fabioverbena/Event-Manager/internal/domain/entity"
	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/response"
	"github.com/fabioverbena/Event-Manager/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// ReplayedHeader marks a response served from a stored key
	ReplayedHeader = "X-Idempotency-Replayed"
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	// Now defaults to time.Now
	Now func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func requestHash(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method + " " + path + "\n"))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Idempotency replays the stored response when a mutation is retried with the
// same Idempotency-Key, so a double-submitted order form creates one order.
// Reusing a key with a different body is rejected with 422. Only 2xx
// responses are stored; requests without a key pass through.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > 255 {
			response.BadRequest(c, "Idempotency-Key troppo lunga")
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Richiesta non valida")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		endpoint := c.Request.Method + " " + c.FullPath()
		hash := requestHash(c.Request.Method, c.Request.URL.Path, body)

		existing, err := config.Repo.GetByKey(c.Request.Context(), key)
		if err != nil {
			response.Error(c, apperror.NewInternalError(err))
			c.Abort()
			return
		}

		if existing != nil && now().Before(existing.ExpiresAt) {
			if existing.RequestHash != hash || existing.Endpoint != endpoint {
				response.Error(c, apperror.NewAppError(http.StatusUnprocessableEntity,
					"Idempotency-Key già usata per una richiesta diversa"))
				c.Abort()
				return
			}
			c.Header(ReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          key,
			Endpoint:     endpoint,
			RequestHash:  hash,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
			log.Warn().
				Err(err).
				Str("request_id", c.GetString(response.RequestIDKey)).
				Str("endpoint", endpoint).
				Msg("store idempotency key")
		}
	}
}
