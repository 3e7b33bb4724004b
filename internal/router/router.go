package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "litter-milestones/docs"
	mem "litter-milestones/internal/adapters/storage/memory"
	pg "litter-milestones/internal/adapters/storage/postgres"
	"litter-milestones/internal/domain/puppies"
	"litter-milestones/internal/middleware"
	"litter-milestones/internal/platform/logger"
	"litter-milestones/internal/platform/metrics"
	"litter-milestones/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger
	Metrics *metrics.GatewayMetrics // nil => se crea uno propio

	// EnforceWindows rechaza eventos fuera de ventana en el gateway.
	EnforceWindows bool
	LocalStateTTL  time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	m := opts.Metrics
	if m == nil {
		created, err := metrics.New()
		if err != nil {
			log.Error("metrics disabled", map[string]any{"err": err})
		} else {
			m = created
		}
	}
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		litterRepo puppies.LitterRepository
		puppyRepo  puppies.PuppyRepository
		logRepo    puppies.LogRepository
	)

	if opts.DB != nil {
		litterRepo = pg.NewLittersRepo(opts.DB)
		puppyRepo = pg.NewPuppiesRepo(opts.DB)
		logRepo = pg.NewLogsRepo(opts.DB)
	} else {
		litterRepo = mem.NewLitterRepo()
		puppyRepo = mem.NewPuppyRepo()
		logRepo = mem.NewLogRepo()
	}

	gwOpts := puppies.GatewayOptions{
		EnforceWindows: opts.EnforceWindows,
		LocalStateTTL:  opts.LocalStateTTL,
		Logger:         log,
	}
	if m != nil {
		gwOpts.Metrics = m
	}

	svc := puppies.NewService(litterRepo, puppyRepo)
	gw := puppies.NewGateway(litterRepo, puppyRepo, logRepo, gwOpts)

	puppies.RegisterRoutes(r, svc, gw)

	return r
}
