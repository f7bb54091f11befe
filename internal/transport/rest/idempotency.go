package rest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const idempotencyKeyHeader = "Idempotency-Key"

// idempotencyTTL определяет, как долго сохранённый ответ можно переиграть.
const idempotencyTTL = 24 * time.Hour

// captureWriter дублирует тело ответа, чтобы его можно было сохранить
// в хранилище идемпотентности после обработки запроса.
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// idempotencyMiddleware переигрывает сохранённые ответы для повторных
// запросов с тем же Idempotency-Key. Заголовок необязателен: запросы
// без него обрабатываются как обычно.
func idempotencyMiddleware(repo domain.IdempotencyRepository, logger *log.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(idempotencyKeyHeader))
		if key == "" || repo == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		requestHash := hashRequest(c.Request.Method, c.FullPath(), body)

		_, err = repo.CreateProcessing(key, requestHash, time.Now().UTC().Add(idempotencyTTL))
		switch {
		case err == nil:
			// Первый запрос с этим ключом, обрабатываем.
		case errors.Is(err, domain.ErrIdempotencyHashMismatch):
			c.AbortWithStatusJSON(http.StatusConflict, errorResponse{Error: domain.ErrIdempotencyHashMismatch.Error()})
			return
		case errors.Is(err, domain.ErrIdempotencyKeyAlreadyExists):
			replayStoredResponse(c, repo, key)
			return
		default:
			logger.WithError(err).Error("failed to register idempotency key")
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		responseBody := writer.body.Bytes()
		if status >= http.StatusOK && status < http.StatusBadRequest {
			err = repo.MarkDone(key, responseBody, status)
		} else {
			err = repo.MarkFailed(key, responseBody, status)
		}
		if err != nil {
			logger.WithError(err).WithField("key", key).Error("failed to store idempotent response")
		}
	}
}

// replayStoredResponse отдаёт ранее сохранённый ответ. Запрос,
// который всё ещё обрабатывается, получает 409.
func replayStoredResponse(c *gin.Context, repo domain.IdempotencyRepository, key string) {
	record, err := repo.Get(key)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	if record.Status == domain.IdempotencyStatusProcessing {
		c.AbortWithStatusJSON(http.StatusConflict, errorResponse{Error: "request is still being processed"})
		return
	}

	c.Header("Content-Type", "application/json; charset=utf-8")
	c.String(record.HTTPStatus, string(record.ResponseBody))
	c.Abort()
}

func hashRequest(method, route string, body []byte) string {
	hasher := sha256.New()
	hasher.Write([]byte(method))
	hasher.Write([]byte{0})
	hasher.Write([]byte(route))
	hasher.Write([]byte{0})
	hasher.Write(body)
	return hex.EncodeToString(hasher.Sum(nil))
}
