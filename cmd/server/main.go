package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	"campus-portal-api/internal/cache"
	"campus-portal-api/internal/config"
	gweb "campus-portal-api/internal/grpcweb"
	"campus-portal-api/internal/handler"
	"campus-portal-api/internal/memstore"
	"campus-portal-api/internal/metrics"
	"campus-portal-api/internal/middleware"
	"campus-portal-api/internal/query"
	"campus-portal-api/internal/seed"
	"campus-portal-api/internal/store"
	"campus-portal-api/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	// entity stores
	var repo workflow.Repository
	if cfg.UsePostgres() {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("db ping: %v", err)
		}
		log.Println("connected to postgres")

		st := store.New(pool)
		if err := st.Migrate(ctx, cfg.MigrationsPath); err != nil {
			log.Printf("migration warning: %v", err)
		} else {
			log.Println("migration applied")
		}
		repo = st
	} else {
		log.Println("DATABASE_URL not set, using in-memory store")
		repo = memstore.New()
	}

	if cfg.SeedDemoData {
		if err := seed.Load(ctx, repo); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Println("demo data loaded")
	}

	// notification list cache
	var lists cache.Notifications = cache.NewMemory()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, caching in memory: %v", err)
		} else {
			log.Printf("caching notifications in redis at %s", cfg.RedisAddr)
			lists = cache.NewRedis(rdb, cfg.CacheTTL)
		}
	}

	q := query.New(repo, lists)
	engine := workflow.New(repo,
		workflow.WithObserver(q),
		workflow.WithObserver(metrics.New(prometheus.DefaultRegisterer)),
	)
	h := handler.New(engine, q)

	// grpc server
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rl.Close()
	interceptors := []grpc.UnaryServerInterceptor{
		middleware.RateLimit(rl),
		middleware.Auth(cfg.JWTSecret),
	}
	srv := grpc.NewServer(
		grpc.ForceServerCodec(handler.Codec{}),
		grpc.ChainUnaryInterceptor(interceptors...),
	)
	handler.RegisterPortalServer(srv, h)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	go func() {
		log.Printf("grpc on :%s", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			log.Printf("grpc: %v", err)
		}
	}()

	// grpc-web bridge, health and metrics
	bridge := gweb.New(h, interceptors...)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.WebPort,
		Handler: gweb.Router(bridge, promhttp.Handler()),
	}
	go func() {
		log.Printf("grpc-web on :%s", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Println("shutting down")
	srv.GracefulStop()
	httpSrv.Shutdown(ctx)
}
