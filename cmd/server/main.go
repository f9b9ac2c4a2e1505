// @title           Photo Gallery API
// @version         1.0
// @description     Upload, list, fetch and delete your own photos.
// @host            localhost:5001
// @schemes         http https
// @BasePath        /api
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo-gallery/internal/api"
	"photo-gallery/internal/config"
	"photo-gallery/internal/database"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/session"
	"photo-gallery/internal/storage"
	"photo-gallery/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := database.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("Could not apply schema: %v", err)
	}
	log.Printf("Connected to %s database", cfg.DB.Driver)

	blobs, err := openBlobStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Could not initialise blob storage: %v", err)
	}

	sessionStore, closeSessions, err := openSessionStore(ctx, cfg.Session, store)
	if err != nil {
		log.Fatalf("Could not initialise session store: %v", err)
	}
	defer closeSessions()

	sessions, err := session.NewManager(sessionStore, session.Options{
		Secret:     cfg.Session.Secret,
		TTL:        cfg.Session.TTL,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
	})
	if err != nil {
		log.Fatalf("Could not create session manager: %v", err)
	}
	go sessions.RunJanitor(ctx, cfg.Session.CleanupInterval)

	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	service := gallery.NewService(store, blobs, wsHub)
	server := api.NewServer(cfg, service, sessions, wsHub)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Photo gallery listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("WARN: graceful shutdown failed: %v", err)
	}
	stop()
}

func openBlobStore(ctx context.Context, cfg config.StorageConfig) (storage.BlobStore, error) {
	switch cfg.Backend {
	case config.StorageMinio:
		m := cfg.Minio
		log.Printf("Photos will be stored in bucket %s at %s", m.Bucket, m.Endpoint)
		return storage.NewMinioStorage(ctx, m.Endpoint, m.AccessKey, m.SecretKey, m.Bucket, m.UseSSL)
	default:
		log.Printf("Photos will be stored in: %s", cfg.Path)
		return storage.NewLocalStorage(cfg.Path)
	}
}

// openSessionStore returns the configured session backend and a function
// that releases it.
func openSessionStore(ctx context.Context, cfg config.SessionConfig, store database.Store) (session.Store, func(), error) {
	if cfg.Backend != config.SessionRedis {
		return store, func() {}, nil
	}

	rdb, err := session.OpenRedis(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	log.Println("Sessions are kept in Redis")
	return session.NewRedisStore(rdb), func() { rdb.Close() }, nil
}
