package api

import (
	"net/http"

	resdto "tablebook/internal/handler/dto/response"

	"tablebook/internal/domain/table"

	"github.com/gin-gonic/gin"
)

type TablesHandler struct {
	catalog []table.Table
}

func NewTablesHandler(catalog []table.Table) *TablesHandler {
	return &TablesHandler{catalog: catalog}
}

// @Summary List tables
// @Description Fixed dining-room catalog with presentation attributes
// @Tags tables
// @Produce json
// @Success 200 {array} resdto.TableResponse
// @Router /api/tables [get]
func (h *TablesHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromCatalog(h.catalog))
}
