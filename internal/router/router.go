package router

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-grooming-agenda/docs"

	"pet-grooming-agenda/internal/adapters/blob"
	evadapter "pet-grooming-agenda/internal/adapters/events"
	mem "pet-grooming-agenda/internal/adapters/storage/memory"
	pg "pet-grooming-agenda/internal/adapters/storage/postgres"
	"pet-grooming-agenda/internal/domain/activity"
	"pet-grooming-agenda/internal/domain/appointments"
	"pet-grooming-agenda/internal/domain/catalog"
	"pet-grooming-agenda/internal/domain/pets"
	"pet-grooming-agenda/internal/domain/profiles"
	"pet-grooming-agenda/internal/domain/reports"
	"pet-grooming-agenda/internal/domain/settings"
	"pet-grooming-agenda/internal/middleware"
	"pet-grooming-agenda/internal/platform/logger"
	"pet-grooming-agenda/internal/ports/auth"
	"pet-grooming-agenda/internal/ports/blobstore"
	"pet-grooming-agenda/internal/ports/events"
)

const defaultMaxUpload = 5 << 20

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger    *slog.Logger
	Blob      blobstore.Store  // nil = bucket en memoria servido en /media
	Publisher events.Publisher // nil = solo log

	RateLimiter       *middleware.RateLimiter // nil = sin límite
	RateLimitFailOpen bool

	BootstrapAdmins []string
	MaxUpload       int64
	Location        *time.Location
}

type repos struct {
	pets         pets.Repository
	profiles     profiles.Repository
	services     catalog.Repository
	appointments appointments.Repository
	activity     activity.Repository
	settings     settings.Repository
}

func newRepos(db *sql.DB) repos {
	if db != nil {
		return repos{
			pets:         pg.NewPetsRepo(db),
			profiles:     pg.NewProfilesRepo(db),
			services:     pg.NewServicesRepo(db),
			appointments: pg.NewAppointmentsRepo(db),
			activity:     pg.NewActivityRepo(db),
			settings:     pg.NewSettingsRepo(db),
		}
	}
	return repos{
		pets:         mem.NewPetRepo(),
		profiles:     mem.NewProfileRepo(),
		services:     mem.NewServiceRepo(),
		appointments: mem.NewAppointmentRepo(),
		activity:     mem.NewActivityRepo(),
		settings:     mem.NewSettingsRepo(),
	}
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	maxUpload := opts.MaxUpload
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}

	store := opts.Blob
	if store == nil {
		s, err := blob.Open(context.Background(), "mem://", "/media")
		if err != nil {
			return nil, err
		}
		store = s
	}
	pub := opts.Publisher
	if pub == nil {
		pub = evadapter.NewLogPublisher(log)
	}

	rp := newRepos(opts.DB)

	// Services por módulo
	settingsSvc := settings.NewService(rp.settings)
	profilesSvc := profiles.NewService(rp.profiles, store, opts.BootstrapAdmins)
	petsSvc := pets.NewService(rp.pets, store)
	catalogSvc := catalog.NewCatalog(rp.services, store)
	activityLog := activity.NewLog(rp.activity, pub, settingsSvc, log)
	apptSvc := appointments.NewService(appointments.Deps{
		Repo:     rp.appointments,
		Pets:     petsSvc,
		Services: catalogSvc,
		Profiles: profilesSvc,
		Activity: activityLog,
		Location: opts.Location,
		Logger:   log,
	})
	reportsSvc := reports.NewService(apptSvc, catalogSvc, opts.Location)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier, profilesSvc, log))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware(log, opts.RateLimitFailOpen))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	blob.RegisterRoutes(r, store)

	// Rutas por módulo
	profiles.RegisterSessionRoutes(r, profilesSvc, log)
	profiles.RegisterRoutes(r, profilesSvc, maxUpload, log)
	pets.RegisterRoutes(r, petsSvc, maxUpload, log)
	catalog.RegisterRoutes(r, catalogSvc, log)
	appointments.RegisterRoutes(r, apptSvc, log)

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin)
		catalog.RegisterAdminRoutes(ar, catalogSvc, maxUpload, log)
		appointments.RegisterAdminRoutes(ar, apptSvc, log)
		reports.RegisterAdminRoutes(ar, reportsSvc, log)
		settings.RegisterAdminRoutes(ar, settingsSvc, log)
	})

	return r, nil
}
