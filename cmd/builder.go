package cmd

import (
	"database/sql"
	"net/http"

	"ordersvc/api"
	"ordersvc/api/health"
	apiorder "ordersvc/api/order"
	orderapp "ordersvc/application/order"
	"ordersvc/config"
	"ordersvc/domain/external"
	orderdomain "ordersvc/domain/order"
	extmock "ordersvc/infrastructure/external/mock"
	"ordersvc/infrastructure/external/resilience"
	"ordersvc/infrastructure/external/rest"
	"ordersvc/infrastructure/persistence/mocks"
	"ordersvc/infrastructure/persistence/mysql"
	"ordersvc/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder assembles the service from configuration: the order store
// (MySQL or in-memory), the external service clients (mock or REST, both
// behind the retry/breaker policy), the application service and the router.
type AppBuilder struct {
	cfg *config.Config
}

// NewBuilder creates an AppBuilder.
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// Build creates the App instance.
func (b *AppBuilder) Build() (*App, error) {
	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	db, orderRepo, err := b.buildRepository()
	if err != nil {
		return nil, err
	}

	memberClient, productClient, paymentClient := b.buildExternalClients()

	orderService := orderapp.NewService(orderRepo, memberClient, productClient, paymentClient)

	var sqlDB *sql.DB
	if db != nil {
		if sqlDB, err = db.DB(); err != nil {
			return nil, err
		}
	}

	healthController := health.NewController(b.cfg, sqlDB)
	orderController := apiorder.NewController(orderService)

	router := api.NewRouter(b.cfg, healthController, orderController)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
	}, nil
}

func (b *AppBuilder) buildRepository() (*gorm.DB, orderdomain.Repository, error) {
	if b.cfg.Database.Type != "mysql" {
		logger.Info("Using in-memory order store")
		return nil, mocks.NewOrderRepository(), nil
	}

	logger.Info("Using MySQL/GORM persistence layer")

	mysqlConfig := &mysql.Config{
		Host:            b.cfg.Database.Host,
		Port:            b.cfg.Database.Port,
		Username:        b.cfg.Database.Username,
		Password:        b.cfg.Database.Password,
		Database:        b.cfg.Database.Database,
		MaxOpenConns:    b.cfg.Database.MaxOpenConns,
		MaxIdleConns:    b.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: b.cfg.Database.ConnMaxLifetime,
		LogLevel:        b.cfg.Log.Level,
	}

	db, err := mysqlConfig.Connect()
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, nil, err
	}

	if b.cfg.Database.AutoMigrate {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, nil, err
		}
	}

	return db, mysql.NewOrderRepository(db), nil
}

func (b *AppBuilder) buildExternalClients() (external.MemberClient, external.ProductClient, external.PaymentClient) {
	policy := resilience.FromAppConfig(&b.cfg.External)

	var (
		members  external.MemberClient
		products external.ProductClient
		payments external.PaymentClient
	)

	if b.cfg.External.MockEnabled {
		logger.Info("Using mock external service clients")
		members = extmock.NewMemberClient()
		products = extmock.NewProductClient()
		payments = extmock.NewPaymentClient()
	} else {
		logger.Info("Using REST external service clients",
			zap.String("member_url", b.cfg.External.MemberServiceURL),
			zap.String("product_url", b.cfg.External.ProductServiceURL),
			zap.String("payment_url", b.cfg.External.PaymentServiceURL))
		members = rest.NewMemberClient(b.cfg.External.MemberServiceURL, b.cfg.External.Timeout)
		products = rest.NewProductClient(b.cfg.External.ProductServiceURL, b.cfg.External.Timeout)
		payments = rest.NewPaymentClient(b.cfg.External.PaymentServiceURL, b.cfg.External.Timeout)
	}

	return resilience.WrapMember(members, policy),
		resilience.WrapProduct(products, policy),
		resilience.WrapPayment(payments, policy)
}
