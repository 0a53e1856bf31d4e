package api

import (
	"net/http"

	"tablebook/internal/handler/httperr"
	"tablebook/internal/infra/store"

	"github.com/gin-gonic/gin"
)

// respondStoreError surfaces a normalized Reservation Store failure with
// the server's own message kept verbatim, as submission errors must be
// actionable for the guest.
func respondStoreError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch {
	case store.IsKind(err, store.KindNotFound):
		status = http.StatusNotFound
	case store.IsKind(err, store.KindConflict):
		status = http.StatusConflict
	case store.IsKind(err, store.KindValidation):
		status = http.StatusUnprocessableEntity
	}
	httperr.AbortWithError(c, status, err, store.UserMessage(err), nil)
}
