package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/smkbisa/backend/internal/config"
	"github.com/smkbisa/backend/internal/handler"
	"github.com/smkbisa/backend/internal/inbox"
	"github.com/smkbisa/backend/internal/logging"
	"github.com/smkbisa/backend/internal/realtime"
	"github.com/smkbisa/backend/internal/repository"
	"github.com/smkbisa/backend/internal/service"
	"github.com/smkbisa/backend/internal/storage"
	"github.com/smkbisa/backend/pkg/auth"

	"log/slog"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logging.Fatal("failed to connect to redis", "error", err)
	}
	broker := realtime.NewRedisBroker(rdb, cfg.Redis.ChannelPrefix)

	pesanRepo := repository.NewPgPesanRepository(pool)
	ppdbRepo := repository.NewPgPPDBRepository(pool)
	beritaRepo := repository.NewPgBeritaRepository(pool)
	jurusanRepo := repository.NewPgJurusanRepository(pool)
	guruRepo := repository.NewPgGuruRepository(pool)
	pengumumanRepo := repository.NewPgPengumumanRepository(pool)
	galeriRepo := repository.NewPgGaleriRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	sekolahRepo := repository.NewPgSekolahRepository(pool)

	pesanService := service.NewPesanService(pesanRepo, broker)
	ppdbService := service.NewPPDBService(ppdbRepo)
	beritaService := service.NewBeritaService(beritaRepo)
	jurusanService := service.NewJurusanService(jurusanRepo)
	guruService := service.NewGuruService(guruRepo)
	pengumumanService := service.NewPengumumanService(pengumumanRepo)
	galeriService := service.NewGaleriService(galeriRepo)
	profileService := service.NewProfileService(profileRepo)
	sekolahService := service.NewSekolahService(sekolahRepo)

	// The inbox mirror lives for the whole process. A failed initial sync is
	// not fatal: the API serves the Failed state and a background loop keeps
	// retrying until the backend comes back.
	inboxSync := inbox.NewSynchronizer(pesanService, broker)
	if err := inboxSync.Start(ctx); err != nil {
		slog.Warn("inbox sync failed, will retry", "error", err)
		go func() {
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()
			for range ticker.C {
				switch inboxSync.State() {
				case inbox.StateSynchronized, inbox.StateClosed:
					return
				}
				if err := inboxSync.Start(ctx); err != nil {
					slog.Warn("inbox sync retry failed", "error", err)
				}
			}
		}()
	}
	ppdbController := inbox.NewStatusController(ppdbService)

	store := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.URLPrefix)
	sessionSecretBytes := auth.SessionSecretBytes(cfg.Auth.SessionSecret)

	h := handler.New(pool, cfg.Server.FrontendURL)
	authHandler := handler.NewAuthHandler(profileService, cfg.Auth.SessionSecret)
	pesanHandler := handler.NewPesanHandler(pesanService, inboxSync, broker)
	ppdbHandler := handler.NewPPDBHandler(ppdbService, ppdbController)
	beritaHandler := handler.NewBeritaHandler(beritaService)
	jurusanHandler := handler.NewJurusanHandler(jurusanService)
	guruHandler := handler.NewGuruHandler(guruService)
	pengumumanHandler := handler.NewPengumumanHandler(pengumumanService)
	galeriHandler := handler.NewGaleriHandler(galeriService)
	sekolahHandler := handler.NewSekolahHandler(sekolahService)
	usersHandler := handler.NewUsersHandler(profileService)
	uploadHandler := handler.NewUploadHandler(store, cfg.Storage.MaxUploadBytes)

	// loadRole resolves the operator's role after authentication so the
	// user-management handlers can enforce admin-only access.
	loadRole := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := auth.UserIDFromContext(r.Context()); ok {
				if p, err := profileService.Get(r.Context(), userID); err == nil {
					r = r.WithContext(auth.WithRole(r.Context(), p.Role))
				} else if !cfg.Auth.Required {
					r = r.WithContext(auth.WithRole(r.Context(), "admin"))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
	wrapAuth := func(next http.Handler) http.Handler {
		if cfg.Auth.Required {
			return auth.RequireAuth(sessionSecretBytes)(loadRole(next))
		}
		return auth.DevAuth(loadRole(next))
	}

	publicLimiter := handler.NewRateLimiter(cfg.Server.PublicRateLimit)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	// Public site
	mux.HandleFunc("GET /api/berita", beritaHandler.List)
	mux.HandleFunc("GET /api/berita/{slug}", beritaHandler.BySlug)
	mux.HandleFunc("GET /api/jurusan", jurusanHandler.List)
	mux.HandleFunc("GET /api/guru", guruHandler.List)
	mux.HandleFunc("GET /api/galeri", galeriHandler.List)
	mux.HandleFunc("GET /api/pengumuman", pengumumanHandler.ListActive)
	mux.HandleFunc("GET /api/identitas", sekolahHandler.GetIdentitas)
	mux.HandleFunc("GET /api/medsos", sekolahHandler.GetMedsos)
	mux.Handle("POST /api/pesan", publicLimiter.Middleware(http.HandlerFunc(pesanHandler.Submit)))
	mux.Handle("POST /api/ppdb", publicLimiter.Middleware(http.HandlerFunc(ppdbHandler.Submit)))

	// Session
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/setup", authHandler.Setup)
	mux.Handle("GET /api/me", wrapAuth(http.HandlerFunc(authHandler.Me)))

	// Admin inbox (live, through the synchronizer)
	mux.Handle("GET /api/admin/pesan", wrapAuth(http.HandlerFunc(pesanHandler.AdminList)))
	mux.Handle("GET /api/admin/pesan/stream", wrapAuth(http.HandlerFunc(pesanHandler.Stream)))
	mux.Handle("POST /api/admin/pesan/{id}/open", wrapAuth(http.HandlerFunc(pesanHandler.Open)))
	mux.Handle("PATCH /api/admin/pesan/{id}/status", wrapAuth(http.HandlerFunc(pesanHandler.UpdateStatus)))
	mux.Handle("DELETE /api/admin/pesan/{id}", wrapAuth(http.HandlerFunc(pesanHandler.Delete)))

	// Admin PPDB
	mux.Handle("GET /api/admin/ppdb", wrapAuth(http.HandlerFunc(ppdbHandler.AdminList)))
	mux.Handle("PATCH /api/admin/ppdb/{id}/status", wrapAuth(http.HandlerFunc(ppdbHandler.UpdateStatus)))
	mux.Handle("DELETE /api/admin/ppdb/{id}", wrapAuth(http.HandlerFunc(ppdbHandler.Delete)))

	// Admin content
	mux.Handle("GET /api/admin/berita", wrapAuth(http.HandlerFunc(beritaHandler.AdminList)))
	mux.Handle("POST /api/admin/berita", wrapAuth(http.HandlerFunc(beritaHandler.Create)))
	mux.Handle("PUT /api/admin/berita/{id}", wrapAuth(http.HandlerFunc(beritaHandler.Update)))
	mux.Handle("DELETE /api/admin/berita/{id}", wrapAuth(http.HandlerFunc(beritaHandler.Delete)))
	mux.Handle("POST /api/admin/jurusan", wrapAuth(http.HandlerFunc(jurusanHandler.Create)))
	mux.Handle("PUT /api/admin/jurusan/{id}", wrapAuth(http.HandlerFunc(jurusanHandler.Update)))
	mux.Handle("DELETE /api/admin/jurusan/{id}", wrapAuth(http.HandlerFunc(jurusanHandler.Delete)))
	mux.Handle("POST /api/admin/guru", wrapAuth(http.HandlerFunc(guruHandler.Create)))
	mux.Handle("PUT /api/admin/guru/{id}", wrapAuth(http.HandlerFunc(guruHandler.Update)))
	mux.Handle("DELETE /api/admin/guru/{id}", wrapAuth(http.HandlerFunc(guruHandler.Delete)))
	mux.Handle("GET /api/admin/pengumuman", wrapAuth(http.HandlerFunc(pengumumanHandler.AdminList)))
	mux.Handle("POST /api/admin/pengumuman", wrapAuth(http.HandlerFunc(pengumumanHandler.Create)))
	mux.Handle("PUT /api/admin/pengumuman/{id}", wrapAuth(http.HandlerFunc(pengumumanHandler.Update)))
	mux.Handle("DELETE /api/admin/pengumuman/{id}", wrapAuth(http.HandlerFunc(pengumumanHandler.Delete)))
	mux.Handle("POST /api/admin/galeri", wrapAuth(http.HandlerFunc(galeriHandler.Create)))
	mux.Handle("PUT /api/admin/galeri/{id}", wrapAuth(http.HandlerFunc(galeriHandler.Update)))
	mux.Handle("DELETE /api/admin/galeri/{id}", wrapAuth(http.HandlerFunc(galeriHandler.Delete)))
	mux.Handle("PUT /api/admin/identitas", wrapAuth(http.HandlerFunc(sekolahHandler.SaveIdentitas)))
	mux.Handle("PUT /api/admin/medsos", wrapAuth(http.HandlerFunc(sekolahHandler.SaveMedsos)))
	mux.Handle("POST /api/admin/upload", wrapAuth(http.HandlerFunc(uploadHandler.Upload)))

	// Operator accounts (admin role enforced in the handler)
	mux.Handle("GET /api/admin/users", wrapAuth(http.HandlerFunc(usersHandler.List)))
	mux.Handle("POST /api/admin/users", wrapAuth(http.HandlerFunc(usersHandler.Create)))
	mux.Handle("PUT /api/admin/users/{id}", wrapAuth(http.HandlerFunc(usersHandler.Update)))
	mux.Handle("DELETE /api/admin/users/{id}", wrapAuth(http.HandlerFunc(usersHandler.Delete)))

	// Uploaded images
	mux.Handle("GET "+cfg.Storage.URLPrefix+"/", http.StripPrefix(cfg.Storage.URLPrefix+"/",
		http.FileServer(http.Dir(cfg.Storage.UploadDir))))

	server := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: the SSE stream stays open indefinitely.
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		slog.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	inboxSync.Close()
}
