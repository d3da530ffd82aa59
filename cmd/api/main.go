package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/warungkapten/kasir-backend/internal/modules/auth"
	"github.com/warungkapten/kasir-backend/internal/modules/cart"
	"github.com/warungkapten/kasir-backend/internal/modules/catalog"
	"github.com/warungkapten/kasir-backend/internal/modules/reports"
	"github.com/warungkapten/kasir-backend/internal/modules/sales"
	"github.com/warungkapten/kasir-backend/internal/modules/user"
	"github.com/warungkapten/kasir-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	ctx := context.Background()

	var (
		menuRepo catalog.MenuRepository
		catRepo  catalog.CategoryRepository
		userRepo user.Repository
		txRepo   sales.Repository
		identity auth.Identity
	)

	menuCache := catalog.NewCache()
	history := sales.NewHistory()

	// ── Storage backend ─────────────────────────────────────
	// Firestore is the system of record; PostgreSQL is the fallback for
	// deployments without a Firebase project (dev, on-prem).
	if projectID := os.Getenv("FIREBASE_PROJECT_ID"); projectID != "" {
		app, err := store.NewFirebaseApp(ctx, projectID, os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		if err != nil {
			log.Fatal(err)
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		authClient, err := app.Auth(ctx)
		if err != nil {
			log.Fatal(err)
		}

		menuRepo = catalog.NewFirestoreMenuRepository(client)
		catRepo = catalog.NewFirestoreCategoryRepository(client)
		userRepo = user.NewFirestoreRepository(client)
		txRepo = sales.NewFirestoreRepository(client)
		identity = auth.NewFirebaseIdentity(authClient, os.Getenv("FIREBASE_WEB_API_KEY"))

		menuCache.Run(ctx, menuRepo.(catalog.MenuWatcher), catRepo.(catalog.CategoryWatcher))
		history.Run(ctx, txRepo.(sales.Watcher))
		fmt.Println("Connected to Firestore project", projectID)
	} else {
		db, err := store.OpenPostgres(os.Getenv("DATABASE_URL"))
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := store.EnsureSchema(ctx, db); err != nil {
			log.Fatal(err)
		}

		menuRepo = catalog.NewPostgresMenuRepository(db)
		catRepo = catalog.NewPostgresCategoryRepository(db)
		userRepo = user.NewPostgresRepository(db)
		txRepo = sales.NewPostgresRepository(db)
		identity = auth.NewLocalIdentity(userRepo)

		// No push channel in SQL mode; keep the snapshots fresh by polling.
		menuCache.Poll(ctx, 30*time.Second, menuRepo, catRepo)
		history.Poll(ctx, 30*time.Second, txRepo)
		fmt.Println("Connected to PostgreSQL")
	}

	if err := menuCache.Refresh(ctx, menuRepo, catRepo); err != nil {
		log.Printf("initial menu load failed: %v", err)
	}
	if err := history.Refresh(ctx, txRepo); err != nil {
		log.Printf("initial transaction load failed: %v", err)
	}

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		log.Println("WARNING: JWT_SECRET not set, using dev default")
		secret = []byte("changeme")
	}

	// ── Services ────────────────────────────────────────────
	sessions := cart.NewSessions()

	catalogService := catalog.NewService(menuRepo, catRepo)
	cartService := cart.NewService(sessions, menuCache)
	salesService := sales.NewService(txRepo, sessions)
	reportsService := reports.NewService(history)
	userService := user.NewService(userRepo, identity)
	authService := auth.NewService(identity, userRepo, secret)

	catalogHandler := catalog.NewHandler(catalogService, menuCache)
	cartHandler := cart.NewHandler(cartService)
	salesHandler := sales.NewHandler(salesService)
	reportsHandler := reports.NewHandler(reportsService)
	userHandler := user.NewHandler(userService)
	authHandler := auth.NewHandler(authService)
	authMW := auth.NewMiddleware(secret)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	authHandler.RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(authMW.Authenticate)

		catalogHandler.RegisterReadRoutes(r)
		cartHandler.RegisterRoutes(r)
		salesHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireOwner)
			catalogHandler.RegisterAdminRoutes(r)
			salesHandler.RegisterAdminRoutes(r)
			userHandler.RegisterRoutes(r)
			reportsHandler.RegisterRoutes(r)
		})
	})

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Kasir API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
