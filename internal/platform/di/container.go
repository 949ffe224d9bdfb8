// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	httpin "ardulimp/internal/adapters/in/http"
	"ardulimp/internal/adapters/in/http/handlers"
	"ardulimp/internal/adapters/in/http/middleware"
	pgrepo "ardulimp/internal/adapters/out/db"
	dbcommon "ardulimp/internal/adapters/out/db/common"
	outfs "ardulimp/internal/adapters/out/firestore"
	"ardulimp/internal/adapters/out/gcs"
	"ardulimp/internal/adapters/out/mail"
	"ardulimp/internal/adapters/out/pdf"
	outredis "ardulimp/internal/adapters/out/redis"
	"ardulimp/internal/adapters/out/whatsapp"
	usecase "ardulimp/internal/application/usecase"
	cartdom "ardulimp/internal/domain/cart"
	"ardulimp/internal/infra/config"
	"ardulimp/internal/infra/database"
	firestoreinfra "ardulimp/internal/infra/firestore"
	redisinfra "ardulimp/internal/infra/redis"
)

// Container bundles everything main needs: the root handler and a Close for
// the underlying clients.
type Container struct {
	Handler http.Handler

	closers []func() error
}

func (c *Container) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (c *Container) deferClose(fn func() error) {
	c.closers = append(c.closers, fn)
}

// Build assembles the full dependency graph from cfg.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// ------------------------------------------------------------
	// Secret Manager (optional; only dialed when a secret is named)
	// ------------------------------------------------------------
	var sm *secretmanager.Client
	if cfg.DBPasswordSecret != "" || cfg.SendGridAPIKeySecret != "" {
		var err error
		if cfg.GCPCreds != "" {
			sm, err = secretmanager.NewClient(ctx, option.WithCredentialsFile(cfg.GCPCreds))
		} else {
			sm, err = secretmanager.NewClient(ctx)
		}
		if err != nil {
			return nil, fmt.Errorf("di: secretmanager client: %w", err)
		}
		c.deferClose(sm.Close)
	}

	// ------------------------------------------------------------
	// PostgreSQL (products, categories, orders)
	// ------------------------------------------------------------
	dbPassword := cfg.DBPassword
	if dbPassword == "" && cfg.DBPasswordSecret != "" {
		v, err := resolveSecret(ctx, sm, cfg.FirestoreProjectID, cfg.DBPasswordSecret)
		if err != nil {
			c.Close()
			return nil, err
		}
		dbPassword = v
	}

	db, err := database.NewConnection(cfg.DBHost, cfg.DBPort, cfg.DBUser, dbPassword, cfg.DBName, cfg.DBSSLMode)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("di: postgres: %w", err)
	}
	c.deferClose(db.Close)

	productRepo := pgrepo.NewProductRepositoryPG(db.Client)
	orderRepo := pgrepo.NewOrderRepositoryPG(db.Client)
	categoryRepo := pgrepo.NewCategoryRepositoryPG(db.Client)
	txRunner := dbcommon.NewTxRunner(db.Client)

	// ------------------------------------------------------------
	// Cart store: Firestore (default) or Redis
	// ------------------------------------------------------------
	var cartStore cartdom.Store
	switch strings.ToLower(strings.TrimSpace(cfg.CartStore)) {
	case "", "firestore":
		fsw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("di: firestore: %w", err)
		}
		c.deferClose(fsw.Close)
		cartStore = outfs.NewCartStoreFS(fsw.Client)
	case "redis":
		rdb, err := redisinfra.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("di: redis: %w", err)
		}
		c.deferClose(rdb.Close)
		cartStore = outredis.NewCartStoreRedis(rdb)
	default:
		c.Close()
		return nil, fmt.Errorf("di: unknown CART_STORE %q", cfg.CartStore)
	}

	// ------------------------------------------------------------
	// GCS product images
	// ------------------------------------------------------------
	var imageStore usecase.ImageStore
	{
		var (
			sc  *storage.Client
			err error
		)
		if cfg.GCPCreds != "" {
			sc, err = storage.NewClient(ctx, option.WithCredentialsFile(cfg.GCPCreds))
		} else {
			sc, err = storage.NewClient(ctx)
		}
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("di: gcs: %w", err)
		}
		c.deferClose(sc.Close)
		imageStore = gcs.NewProductImageRepositoryGCS(sc, cfg.GCSBucket)
	}

	// ------------------------------------------------------------
	// Firebase auth (admin guard)
	// ------------------------------------------------------------
	var authMW *middleware.AdminAuthMiddleware
	{
		var opts []option.ClientOption
		if cfg.GCPCreds != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCPCreds))
		}
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("di: firebase app: %w", err)
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("di: firebase auth: %w", err)
		}
		authMW = &middleware.AdminAuthMiddleware{FirebaseAuth: authClient}
	}

	// ------------------------------------------------------------
	// Mail (optional; no key disables the notifier)
	// ------------------------------------------------------------
	var notifier usecase.OrderNotifier
	{
		apiKey := cfg.SendGridAPIKey
		if apiKey == "" && cfg.SendGridAPIKeySecret != "" {
			v, err := resolveSecret(ctx, sm, cfg.FirestoreProjectID, cfg.SendGridAPIKeySecret)
			if err != nil {
				log.Printf("[di] WARN: sendgrid secret: %v (order mail disabled)", err)
			} else {
				apiKey = v
			}
		}
		if apiKey != "" && cfg.MailTo != "" {
			notifier = mail.NewOrderMailer(mail.NewSendGridClient(apiKey), cfg.MailFrom, cfg.MailTo)
		} else {
			log.Printf("[di] order mail disabled (no sendgrid key or MAIL_TO)")
		}
	}

	// ------------------------------------------------------------
	// Usecases
	// ------------------------------------------------------------
	links := whatsapp.NewLinkBuilder(cfg.WhatsAppNumber)

	cartUC := usecase.NewCartUsecase(cartStore, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(cartStore, orderRepo, links, notifier)
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, txRunner)
	productUC := usecase.NewProductUsecase(productRepo, imageStore)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)

	// ------------------------------------------------------------
	// HTTP
	// ------------------------------------------------------------
	guard := authMW.Handler

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpin.Register(mux, httpin.Deps{
		Catalog:  handlers.NewCatalogHandler(productUC, categoryUC),
		Cart:     handlers.NewCartHandler(cartUC),
		Checkout: handlers.NewCheckoutHandler(checkoutUC),

		Orders:     guard(handlers.NewOrderHandler(orderUC, pdf.NewOrderRenderer(""))),
		Products:   guard(handlers.NewProductAdminHandler(productUC)),
		Categories: guard(handlers.NewCategoryHandler(categoryUC)),
		Stats:      guard(handlers.NewStatsHandler(productUC)),
	})

	cors := middleware.CORS(cfg.AllowedOrigins)
	c.Handler = cors(middleware.Recover(mux))

	log.Printf("[di] container ready (cartStore=%s, mail=%t)", cfg.CartStore, notifier != nil)
	return c, nil
}
