package handler

import (
	"net/http"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/apierror"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler {
	return &CaixaHandler{svc: svc}
}

func (h *CaixaHandler) RegistrarMovimento(c *gin.Context) {
	var req dto.MovimentoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimento(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CaixaHandler) ListarMovimentos(c *gin.Context) {
	var filter dto.CaixaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarMovimentos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar movimentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumo godoc
// @Summary      Resumo do caixa
// @Description  Soma entradas e saidas do periodo e devolve o saldo
// @Tags         caixa
// @Produce      json
// @Param        de   query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        ate  query  string  false  "Data final (YYYY-MM-DD)"
// @Success      200  {object}  dto.ResumoCaixaResponse
// @Failure      400  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /v1/caixa/resumo [get]
func (h *CaixaHandler) Resumo(c *gin.Context) {
	resp, err := h.svc.Resumo(c.Request.Context(), c.Query("de"), c.Query("ate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
