package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json; charset=utf-8"

// respondRemember — пишет JSON-ответ и, если у запроса есть ключ идемпотентности,
// замораживает пару (код, тело) под этим ключом. Повтор получает те же байты:
// тело сериализуется один раз и те же байты уходят и клиенту, и в кэш.
// Замораживаются и успехи, и ошибки.
func (h *Handler) respondRemember(c *gin.Context, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "response marshal failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if key, ok := c.Get(ctxKeyIdemKey); ok {
		h.idem.Set(c.Request.Context(), key.(string), status, body, 0)
	}

	c.Data(status, jsonContentType, body)
}
