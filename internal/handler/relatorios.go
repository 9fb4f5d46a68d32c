package handler

import (
	"net/http"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/apierror"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// Financeiro godoc
// @Summary      Relatorio financeiro do periodo
// @Description  Faturamento, custo de producao e resultado estimado entre duas datas
// @Tags         relatorios
// @Produce      json
// @Param        de   query  string  true  "Data inicial (YYYY-MM-DD)"
// @Param        ate  query  string  true  "Data final (YYYY-MM-DD)"
// @Success      200  {object}  dto.RelatorioFinanceiroResponse
// @Failure      400  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/relatorios/financeiro [get]
func (h *RelatoriosHandler) Financeiro(c *gin.Context) {
	var filter dto.RelatorioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if filter.De == "" || filter.Ate == "" {
		c.JSON(http.StatusBadRequest, apierror.New("informe os parametros de e ate"))
		return
	}
	resp, err := h.svc.Financeiro(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
