//
// siteapi
// =======
// Backend for the Skript Networks marketing site: the public blog
// listing, the admin article CRUD and the contact-form email relay.
//
// Boot the server:
// ----------------
// $ go run .
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/api/articles
// $ curl http://localhost:3333/api/articles/{id}
// $ curl -X POST -d '{"name":"Jo","email":"jo@example.com","message":"We need a network audit."}' http://localhost:3333/api/contact
// $ curl http://localhost:3333/api/admin/articles
//
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"

	"github.com/skriptnetworks/siteapi/internal/article"
	"github.com/skriptnetworks/siteapi/internal/contact"
	"github.com/skriptnetworks/siteapi/internal/mail"
	"github.com/skriptnetworks/siteapi/internal/store"
)

const ServiceName = "SITEAPI"

type CtxKey int8

const (
	CtxKeyLogger CtxKey = iota
)

type App struct {
	sugarLogger *zap.SugaredLogger
	config      Config
	completed   metric.BoundInt64Counter
}

func main() {
	var (
		routes   = flag.Bool("routes", getEnvBool(ServiceName+"_ROUTES", false), "Generate router documentation")
		addr     = flag.String("addr", "", "application address (overrides env)")
		diagAddr = flag.String("diag_addr", "", "diag address (overrides env)")
	)

	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync() // flushes buffer, if any
	sugar := logger.Sugar()

	cfg := loadConfig()
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *diagAddr != "" {
		cfg.DiagAddr = *diagAddr
	}

	a := App{
		sugarLogger: sugar,
		config:      cfg,
	}

	promCfg := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(promCfg.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)
	exporter, err := prometheus.New(promCfg, c)
	if err != nil {
		sugar.Panicf("failed to initialize prometheus exporter %v", err)
	}
	global.SetMeterProvider(exporter.MeterProvider())

	meter := global.Meter("siteapi")
	a.completed = metric.Must(meter).NewInt64Counter(
		"http/server/completed_count",
		metric.WithDescription("Count of completed API requests"),
	).Bind()
	defer a.completed.Unbind()

	st, err := store.Default(cfg.DatabasePath)
	if err != nil {
		sugar.Fatalw("opening store", "path", cfg.DatabasePath, "error", err)
	}
	if cfg.Seed {
		if err := store.SeedIfEmpty(context.Background(), st); err != nil {
			sugar.Fatalw("seeding sample articles", "error", err)
		}
	}

	sender := mail.SenderFor(cfg.MailgunDomain, cfg.MailgunAPIKey)
	if _, disabled := sender.(mail.DisabledSender); disabled {
		sugar.Warnw("MAILGUN_API_KEY or MAILGUN_DOMAIN not set - email functionality disabled")
	}
	relay := mail.NewRelay(sender, cfg.ContactInbox, cfg.MailgunDomain, sugar)

	articles := article.NewResource(st, sugar)
	contacts := contact.NewResource(relay, sugar)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.Logger)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigin, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		logger := r.Context().Value(CtxKeyLogger).(*zap.SugaredLogger)
		logger.Infow("ping")
		if _, err := w.Write([]byte("pong")); err != nil {
			sugar.Errorw(err.Error())
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(a.CountCompleted)

		r.Mount("/articles", articles.Routes())
		r.Mount("/contact", contacts.Routes())
		r.Mount("/admin/articles", articles.AdminRoutes())
	})

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	// Passing -routes to the program will generate docs for the above
	// router definition.
	if *routes {
		// nolint
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/skriptnetworks/siteapi",
			Intro:       "Skript Networks site API generated docs.",
		}))

		return
	}

	// Serve the built marketing site when it is present next to the
	// binary.
	if info, err := os.Stat(cfg.PublicDir); err == nil && info.IsDir() {
		FileServer(r, "/", http.Dir(cfg.PublicDir))
	}

	go func() {
		sugar.Infow("listening", "addr", cfg.Addr)
		if err := http.ListenAndServe(cfg.Addr, r); err != nil {
			a.sugarLogger.Errorw(err.Error())
		}
	}()

	if err := http.ListenAndServe(cfg.DiagAddr, diagRouter); err != nil {
		a.sugarLogger.Errorw(err.Error())
	}
}

// FileServer serves static files from root under path.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit any URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}

// Logger puts the sugared logger on the request context.
func (a *App) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), CtxKeyLogger, a.sugarLogger)))
	})
}

// CountCompleted bumps the completed-request counter once per handled
// API request.
func (a *App) CountCompleted(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		a.completed.Add(r.Context(), 1)
	})
}
