package router

import (
	"time"

	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/config"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/handler"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/middleware"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/repository"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/service"
	"github.com/valerialucenavpl-create/gestao-lucena-backend/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	despesaRepo := repository.NewDespesaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	orcamentoRepo := repository.NewOrcamentoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	materialSvc := service.NewMaterialService(materialRepo)
	despesaSvc := service.NewDespesaService(despesaRepo, rdb)
	produtoSvc := service.NewProdutoService(produtoRepo, materialRepo, despesaSvc)
	clienteSvc := service.NewClienteService(clienteRepo)
	orcamentoSvc := service.NewOrcamentoService(
		orcamentoRepo, produtoRepo, materialRepo,
		vendaRepo, caixaRepo, clienteRepo,
		despesaSvc, dispatcher,
	)
	vendaSvc := service.NewVendaService(vendaRepo, caixaRepo)
	caixaSvc := service.NewCaixaService(caixaRepo)
	relatorioSvc := service.NewRelatorioService(vendaRepo, orcamentoRepo, despesaSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	materiaisH := handler.NewMateriaisHandler(materialSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	simulacaoH := handler.NewSimulacaoHandler(produtoSvc, rdb)
	despesasH := handler.NewDespesasHandler(despesaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	orcamentosH := handler.NewOrcamentosHandler(orcamentoSvc)
	vendasH := handler.NewVendasHandler(vendaSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price simulation — no auth required, used by the public storefront
	r.POST("/v1/precos/simulacao", simulacaoH.Simular)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: vendedor, financeiro, administrador — declared per-group
		todos := middleware.RequireRole("vendedor", "financeiro", "administrador")
		comercial := middleware.RequireRole("vendedor", "administrador")
		financeiro := middleware.RequireRole("financeiro", "administrador")
		admin := middleware.RequireRole("administrador")

		// Materiais — reads for everyone, writes for administrador
		v1.GET("/materiais", todos, materiaisH.Listar)
		v1.GET("/materiais/:id", todos, materiaisH.ObterPorID)
		v1.GET("/materiais/:id/movimentos", todos, materiaisH.ListarMovimentos)
		v1.PATCH("/materiais/:id/estoque", comercial, materiaisH.AjustarEstoque)
		mats := v1.Group("/materiais", admin)
		{
			mats.POST("", materiaisH.Criar)
			mats.PUT("/:id", materiaisH.Atualizar)
			mats.DELETE("/:id", materiaisH.Desativar)
			mats.DELETE("/:id/definitivo", materiaisH.Excluir)
		}

		// Produtos — reads for everyone, writes for administrador
		v1.GET("/produtos", todos, produtosH.Listar)
		v1.GET("/produtos/:id", todos, produtosH.ObterPorID)
		prods := v1.Group("/produtos", admin)
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.DELETE("/:id", produtosH.Desativar)
		}

		// Despesas — drive the pricing percentages, restricted
		desp := v1.Group("/despesas", financeiro)
		{
			desp.POST("", despesasH.Criar)
			desp.GET("", despesasH.Listar)
			desp.PUT("/:id", despesasH.Atualizar)
			desp.DELETE("/:id", despesasH.Excluir)
		}

		cli := v1.Group("/clientes", comercial)
		{
			cli.POST("", clientesH.Criar)
			cli.GET("", clientesH.Listar)
			cli.GET("/:id", clientesH.ObterPorID)
			cli.PUT("/:id", clientesH.Atualizar)
			cli.DELETE("/:id", clientesH.Desativar)
		}

		orc := v1.Group("/orcamentos", comercial)
		{
			orc.POST("", orcamentosH.Criar)
			orc.GET("", orcamentosH.Listar)
			orc.GET("/:id", orcamentosH.ObterPorID)
			orc.PUT("/:id", orcamentosH.Atualizar)
			orc.DELETE("/:id", orcamentosH.Excluir)
			orc.POST("/:id/itens", orcamentosH.AdicionarItem)
			orc.PUT("/:id/itens/:itemId", orcamentosH.AtualizarItem)
			orc.DELETE("/:id/itens/:itemId", orcamentosH.RemoverItem)
			orc.PATCH("/:id/estado", orcamentosH.MudarEstado)
			orc.POST("/:id/email", orcamentosH.EnviarEmail)
		}

		vnd := v1.Group("/vendas", comercial)
		{
			vnd.POST("", vendasH.Registrar)
			vnd.GET("", vendasH.Listar)
			vnd.GET("/:id", vendasH.ObterPorID)
			vnd.POST("/:id/cancelar", vendasH.Cancelar)
		}

		caixa := v1.Group("/caixa", financeiro)
		{
			caixa.POST("/movimentos", caixaH.RegistrarMovimento)
			caixa.GET("/movimentos", caixaH.ListarMovimentos)
			caixa.GET("/resumo", caixaH.Resumo)
		}

		v1.GET("/relatorios/financeiro", financeiro, relatoriosH.Financeiro)

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
