package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/smsgrab/models"
	"github.com/use-agent/smsgrab/store"
)

// Messages returns a handler for GET /api/v1/messages?phone=<number>.
// Available only when a message store is configured.
func Messages(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if st == nil {
			c.JSON(http.StatusServiceUnavailable, models.APIErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeStoreFailed,
					Message: "message store is not configured",
				},
			})
			return
		}

		phone := c.Query("phone")
		if phone == "" {
			c.JSON(http.StatusBadRequest, models.APIErrorResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "phone query parameter is required",
				},
			})
			return
		}

		msgs, err := st.MessagesByPhone(c.Request.Context(), phone)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.MessagesResponse{
				Success: false,
				Phone:   phone,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeStoreFailed,
					Message: err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusOK, models.MessagesResponse{
			Success:  true,
			Phone:    phone,
			Messages: msgs,
		})
	}
}
