package routes

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"pix_checkout/internal/adapter/http/handlers"
	"pix_checkout/internal/adapter/persistence/repository"
	"pix_checkout/internal/config"
	"pix_checkout/internal/infrastructure/analytics"
	"pix_checkout/internal/infrastructure/database"
	"pix_checkout/internal/infrastructure/payments"
	"pix_checkout/internal/usecase"
	"pix_checkout/internal/usecase/interfaces"
	"pix_checkout/internal/worker"
)

const (
	proxyCreatePath = "/pix"
	proxyStatusPath = "/pix/status"
)

// application holds the wired dependency graph behind the router.
type application struct {
	sessionHandler *handlers.SessionHandler
	proxyHandler   *handlers.ProxyHandler
	healthHandler  *handlers.HealthHandler

	reconciler *worker.ReconciliationWorker
	sweeper    *worker.SessionSweeper
	background *analytics.BackgroundBeaconSink
	closers    []func()
}

func buildApplication(ctx context.Context, cfg config.Config) (*application, error) {
	app := &application{}

	repo, err := app.buildSessionRepository(ctx, cfg)
	if err != nil {
		app.close()
		return nil, err
	}

	serverGateway := buildServerGateway(cfg)
	paths := usecase.GatewayPaths{
		Direct:   buildDirectGateway(cfg),
		Mediated: buildMediatedGateway(cfg, serverGateway),
	}
	productionLike := cfg.ProductionLike()
	log.Printf("[server] gateways direct=%t mediated_remote=%t production_like=%t", paths.Direct != nil, cfg.Mediator.BaseURL != "", productionLike)

	primary, redundant := app.buildSinks(cfg)
	reporter := usecase.NewConversionReporter(repo, cfg.Analytics.Currency, primary, redundant...).
		WithClaimLease(2 * cfg.Analytics.Timeout)
	statusUseCase := usecase.NewSessionStatusUseCase(repo, paths, productionLike, reporter, cfg.Session.ExpiryCountdown)

	app.reconciler = worker.NewReconciliationWorker(statusUseCase, worker.ReconciliationConfig{
		Tick:         cfg.Polling.Tick,
		Initial:      cfg.Polling.Initial,
		Pending:      cfg.Polling.Pending,
		ErrorBackoff: cfg.Polling.ErrorBackoff,
		CallTimeout:  cfg.Polling.CallTimeout,
		Concurrency:  cfg.Polling.Concurrency,
	})
	app.sweeper = worker.NewSessionSweeper(repo, cfg.Session.SweepInterval)

	creationUseCase := usecase.NewSessionCreationUseCase(repo, app.reconciler, paths, productionLike)

	app.sessionHandler = handlers.NewSessionHandler(creationUseCase, statusUseCase)
	app.proxyHandler = handlers.NewProxyHandler(serverGateway, cfg.Proxy.Secret)
	app.healthHandler = handlers.NewHealthHandler(cfg.Session.Store, app.reconciler)
	return app, nil
}

func (a *application) buildSessionRepository(ctx context.Context, cfg config.Config) (interfaces.ISessionRepository, error) {
	retention := cfg.Session.Retention
	switch cfg.Session.Store {
	case config.StoreRedis:
		client, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		return repository.NewSessionRedisRepository(client, retention), nil
	case config.StoreDynamoDB:
		ddb := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		return repository.NewSessionDynamoRepository(ddb, cfg.DynamoDB.Table, retention), nil
	case config.StorePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		repo := repository.NewSessionPostgresRepository(pool, retention)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		return repo, nil
	default:
		log.Printf("[server] session store is process-local; run a single instance or pick a shared store")
		return repository.NewSessionMemoryRepository(retention), nil
	}
}

// buildServerGateway returns the gateway holding the server-scoped credential. It
// backs the in-process mediated path and the proxy routes.
func buildServerGateway(cfg config.Config) interfaces.IPaymentGateway {
	p := cfg.Provider
	if p.MockEnabled {
		log.Printf("[server] payment gateway mock mode approve_after=%d", p.MockApproveAfter)
		return payments.NewMockGateway(p.MockApproveAfter, p.QRRenderURL)
	}
	if p.Kind == config.ProviderMercadoPago {
		g, err := payments.NewMercadoPagoGateway(p.MercadoPagoAccessToken, p.QRRenderURL)
		if err == nil {
			return g
		}
		log.Printf("[server] Mercado Pago gateway not configured, falling back to http provider err=%v", err)
	}
	return payments.NewHTTPProviderGateway(payments.HTTPProviderConfig{
		Label:       "server",
		BaseURL:     p.BaseURL,
		SecretKey:   p.SecretKey,
		CreatePath:  p.CreatePath,
		StatusPath:  p.StatusPath,
		Timeout:     p.Timeout,
		QRRenderURL: p.QRRenderURL,
	})
}

func buildDirectGateway(cfg config.Config) interfaces.IPaymentGateway {
	p := cfg.Provider
	if p.MockEnabled || p.DirectSecretKey == "" {
		return nil
	}
	return payments.NewHTTPProviderGateway(payments.HTTPProviderConfig{
		Label:       string(usecase.CallPathDirect),
		BaseURL:     p.BaseURL,
		SecretKey:   p.DirectSecretKey,
		CreatePath:  p.CreatePath,
		StatusPath:  p.StatusPath,
		Timeout:     p.Timeout,
		QRRenderURL: p.QRRenderURL,
	})
}

// buildMediatedGateway points the mediated path at a remote proxy when one is
// configured, otherwise it calls the provider in process with the server credential.
func buildMediatedGateway(cfg config.Config, server interfaces.IPaymentGateway) interfaces.IPaymentGateway {
	if cfg.Mediator.BaseURL == "" {
		return server
	}
	return payments.NewHTTPProviderGateway(payments.HTTPProviderConfig{
		Label:       string(usecase.CallPathMediated),
		BaseURL:     strings.TrimRight(cfg.Mediator.BaseURL, "/") + "/v1" + PathProxy,
		SecretKey:   cfg.Mediator.Secret,
		CreatePath:  proxyCreatePath,
		StatusPath:  proxyStatusPath,
		Timeout:     cfg.Provider.Timeout,
		QRRenderURL: cfg.Provider.QRRenderURL,
	})
}

// buildSinks returns a nil primary when analytics is not configured, which disables
// reporting.
func (a *application) buildSinks(cfg config.Config) (interfaces.IConversionSink, []interfaces.IConversionSink) {
	if !cfg.Analytics.Enabled() {
		log.Printf("[server] conversion reporting disabled")
		return nil, nil
	}
	cc := analytics.CollectorConfig{
		BaseURL:     cfg.Analytics.CollectorURL,
		PixelID:     cfg.Analytics.PixelID,
		AccessToken: cfg.Analytics.AccessToken,
		Timeout:     cfg.Analytics.Timeout,
	}
	if !cfg.Analytics.RedundantChannels {
		return analytics.NewPixelEventSink(cc), nil
	}
	a.background = analytics.NewBackgroundBeaconSink(cc)
	return analytics.NewPixelEventSink(cc), []interfaces.IConversionSink{
		analytics.NewImageBeaconSink(cc),
		a.background,
		analytics.NewEmbeddedDocumentSink(cc),
	}
}

// startWorkers runs the reconciliation worker and the sweeper until ctx is done.
// The returned channel closes once both stopped.
func (a *application) startWorkers(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.reconciler.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		a.sweeper.Run(ctx)
	}()
	go func() {
		wg.Wait()
		if a.background != nil {
			a.background.Wait()
		}
		close(done)
	}()
	return done
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
