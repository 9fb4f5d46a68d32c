package handler

import (
	"net/http"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/apierror"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/middleware"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrcamentosHandler struct{ svc service.OrcamentoService }

func NewOrcamentosHandler(svc service.OrcamentoService) *OrcamentosHandler {
	return &OrcamentosHandler{svc: svc}
}

// Criar godoc
// @Summary Cria um orçamento com itens precificados pelo motor
// @Tags orcamentos
// @Accept json
// @Produce json
// @Param body body dto.CriarOrcamentoRequest true "Orçamento"
// @Success 201 {object} dto.OrcamentoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/orcamentos [post]
func (h *OrcamentosHandler) Criar(c *gin.Context) {
	var req dto.CriarOrcamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Criar(c.Request.Context(), claims.Nome, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrcamentosHandler) Listar(c *gin.Context) {
	var filter dto.OrcamentoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar orcamentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrcamentosHandler) ObterPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Orcamento nao encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrcamentosHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AtualizarOrcamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrcamentosHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Itens ────────────────────────────────────────────────────────────────────

func (h *OrcamentosHandler) AdicionarItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ItemOrcamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdicionarItem(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrcamentosHandler) AtualizarItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID do item invalido"))
		return
	}
	var req dto.AtualizarItemOrcamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrcamentosHandler) RemoverItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID do item invalido"))
		return
	}
	resp, err := h.svc.RemoverItem(c.Request.Context(), id, itemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Estado / Email ───────────────────────────────────────────────────────────

// MudarEstado godoc
// @Summary Muda o estado de um orçamento (aprovação gera venda e entrada no caixa)
// @Tags orcamentos
// @Accept json
// @Produce json
// @Param id path string true "ID do orçamento"
// @Param body body dto.MudarEstadoRequest true "Novo estado"
// @Success 200 {object} dto.OrcamentoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/orcamentos/{id}/estado [patch]
func (h *OrcamentosHandler) MudarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.MudarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.MudarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

type enviarEmailRequest struct {
	Destino string `json:"destino" validate:"omitempty,email"`
}

func (h *OrcamentosHandler) EnviarEmail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req enviarEmailRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarEmail(c.Request.Context(), id, req.Destino); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "Envio de email agendado"})
}
