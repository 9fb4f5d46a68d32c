package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/apierror"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/dto"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const simulacaoCacheTTL = 5 * time.Minute

// SimulacaoHandler serves the public price simulation endpoint.
// No authentication required — no side effects whatsoever. The storefront
// quote widget polls it while the customer tweaks dimensions, so identical
// requests are cached briefly in Redis.
type SimulacaoHandler struct {
	svc service.ProdutoService
	rdb *redis.Client
}

func NewSimulacaoHandler(svc service.ProdutoService, rdb *redis.Client) *SimulacaoHandler {
	return &SimulacaoHandler{svc: svc, rdb: rdb}
}

// Simular godoc
// @Summary Simula o preço de um produto para dimensões dadas (sem autenticação)
// @Tags precos
// @Accept json
// @Produce json
// @Param body body dto.SimulacaoRequest true "Parâmetros da simulação"
// @Success 200 {object} dto.SimulacaoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precos/simulacao [post]
func (h *SimulacaoHandler) Simular(c *gin.Context) {
	var req dto.SimulacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := c.Request.Context()

	cacheKey := fmt.Sprintf("sim:%s:%s:%s:%s:%s",
		req.ProdutoID, req.Variante,
		req.LarguraMM.String(), req.AlturaMM.String(), req.Quantidade.String())

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.SimulacaoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — run the engine
	resp, err := h.svc.Simular(ctx, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, simulacaoCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
