package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/billingoverview"
	overviewdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/billingoverview/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/config"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer"
	customerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/customer/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice"
	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ledger"
	ledgerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ledger/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/migration"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/observability"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/providers/pdf"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ratelimit"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading"
	readingdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings"
	settingsdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/settings/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff"
	tariffdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	observability.Module,
	migration.Module,
	ratelimit.Module,
	customer.Module,
	tariff.Module,
	settings.Module,
	reading.Module,
	invoice.Module,
	ledger.Module,
	billingoverview.Module,
	pdf.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *observability.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log))
	r.Use(observability.GinTracing())
	r.Use(httpMetrics.Middleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		httpMetrics.Registry(),
		promhttp.HandlerOpts{},
	)))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *observability.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine  *gin.Engine
	cfg     config.Config
	billing config.BillingConfig
	db      *gorm.DB
	genID   *snowflake.Node
	locker  ratelimit.Locker

	customerSvc customerdomain.Service
	tariffSvc   tariffdomain.Service
	settingsSvc settingsdomain.Service
	readingSvc  readingdomain.Service
	invoiceSvc  invoicedomain.Service
	ledgerSvc   ledgerdomain.Service
	overviewSvc overviewdomain.Service
	pdfProvider pdf.Provider
}

type ServerParams struct {
	fx.In

	Gin     *gin.Engine
	Cfg     config.Config
	Billing config.BillingConfig
	DB      *gorm.DB
	GenID   *snowflake.Node
	Locker  ratelimit.Locker

	CustomerSvc customerdomain.Service
	TariffSvc   tariffdomain.Service
	SettingsSvc settingsdomain.Service
	ReadingSvc  readingdomain.Service
	InvoiceSvc  invoicedomain.Service
	LedgerSvc   ledgerdomain.Service
	OverviewSvc overviewdomain.Service
	PDFProvider pdf.Provider
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		billing:     p.Billing,
		db:          p.DB,
		genID:       p.GenID,
		locker:      p.Locker,
		customerSvc: p.CustomerSvc,
		tariffSvc:   p.TariffSvc,
		settingsSvc: p.SettingsSvc,
		readingSvc:  p.ReadingSvc,
		invoiceSvc:  p.InvoiceSvc,
		ledgerSvc:   p.LedgerSvc,
		overviewSvc: p.OverviewSvc,
		pdfProvider: p.PDFProvider,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/customers", s.CreateCustomer)
	v1.GET("/customers", s.ListCustomers)
	v1.GET("/customers/:id", s.GetCustomer)
	v1.PATCH("/customers/:id/status", s.UpdateCustomerStatus)

	v1.GET("/tariff/tiers", s.ListTariffTiers)
	v1.POST("/tariff/tiers", s.CreateTariffTier)
	v1.PUT("/tariff/tiers/:id", s.UpdateTariffTier)

	v1.GET("/settings", s.GetSettings)
	v1.PUT("/settings", s.UpdateSettings)

	v1.POST("/customers/:id/readings", s.withCustomerLock(s.CreateReading))
	v1.GET("/customers/:id/readings", s.ListReadings)

	v1.GET("/customers/:id/invoices", s.ListInvoices)
	v1.GET("/invoices/:id", s.GetInvoice)
	v1.GET("/invoices/:id/pdf", s.InvoicePDF)
	v1.GET("/invoices/:id/receipt", s.InvoiceReceiptPDF)

	v1.POST("/customers/:id/topup", s.withCustomerLock(s.TopUp))
	v1.POST("/customers/:id/adjustments", s.withCustomerLock(s.CreateAdjustment))
	v1.POST("/customers/:id/pay-all", s.withCustomerLock(s.PayAllUnpaid))
	v1.GET("/customers/:id/transactions", s.ListTransactions)

	v1.GET("/overview", s.Overview)
	v1.GET("/customers/:id/summary", s.CustomerYearSummary)
	v1.GET("/customers/:id/unpaid-invoices", s.UnpaidInvoices)
}

// withCustomerLock serializes balance-mutating requests per customer so a
// double-submitted form cannot interleave two mutations.
func (s *Server) withCustomerLock(handler gin.HandlerFunc) gin.HandlerFunc {
	const lockTTL = 15 * time.Second

	return func(c *gin.Context) {
		key := "customer-lock:" + c.Param("id")

		token, acquired, err := s.locker.TryLock(c.Request.Context(), key, lockTTL)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !acquired {
			AbortWithError(c, ErrLockBusy)
			return
		}
		defer func() {
			_ = s.locker.Release(c.Request.Context(), key, token)
		}()

		handler(c)
	}
}
