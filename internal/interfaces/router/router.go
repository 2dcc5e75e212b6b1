package router

import (
	"net/http"

	authsvc "automind-backend/internal/application/auth"
	chatsvc "automind-backend/internal/application/chatbot"
	estsvc "automind-backend/internal/application/estimator"
	lesvc "automind-backend/internal/application/listingevents"
	listsvc "automind-backend/internal/application/listings"
	msgsvc "automind-backend/internal/application/messages"
	reqsvc "automind-backend/internal/application/requests"
	usersvc "automind-backend/internal/application/user"
	"automind-backend/internal/config"
	"automind-backend/internal/infrastructure/database"
	authhandler "automind-backend/internal/interfaces/handlers/auth"
	chathandler "automind-backend/internal/interfaces/handlers/chatbot"
	esthandler "automind-backend/internal/interfaces/handlers/estimator"
	healthhandler "automind-backend/internal/interfaces/handlers/health"
	lehandler "automind-backend/internal/interfaces/handlers/listingevents"
	listhandler "automind-backend/internal/interfaces/handlers/listings"
	msghandler "automind-backend/internal/interfaces/handlers/messages"
	reqhandler "automind-backend/internal/interfaces/handlers/requests"
	userhandler "automind-backend/internal/interfaces/handlers/user"
	"automind-backend/internal/middleware"
	"automind-backend/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		if errDB = database.AutoMigrate(db); errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	// Estimator and chatbot do not need the database.
	es := estsvc.Load(cfg.ModelPath, cfg.DatasetPath)
	eh := &esthandler.Handlers{Service: es}
	eg := app.Group("/api/v1/estimator")
	eg.Get("/options", eh.Options)
	eg.Get("/models/:company", eh.Models)
	eg.Post("/predict", eh.Predict)

	var responder chatsvc.Responder
	if cfg.GeminiAPIKey != "" {
		responder = chatsvc.NewGeminiClient(cfg.GeminiAPIKey)
	}
	cs := &chatsvc.Service{Responder: responder}
	ch := &chathandler.Handlers{Service: cs}
	app.Post("/api/v1/chat", ch.Chat)

	if db != nil && rdb != nil {
		us := &usersvc.Service{DB: db, Rdb: rdb}

		var userFinder authsvc.UserFinder
		userFinder = &authsvc.GormUserFinder{DB: db}
		ah := &authhandler.Handlers{
			UserFinder: userFinder,
			Users:      us,
			Rdb:        rdb,
			Config:     sessionCfg,
		}
		authGroup := app.Group("/api/v1/auth")
		authGroup.Post("/signup", ah.Signup)
		authGroup.Post("/login", ah.Login)
		authGroup.Get("/me", ah.Me)
		authGroup.Delete("/logout", ah.Logout)
		authGroup.Delete("/delete-account", middleware.RequireAuth(), ah.DeleteAccount)

		// Users directory
		uh := &userhandler.Handlers{Service: us}
		ug := app.Group("/api/v1/users", middleware.RequireAuth())
		ug.Get("/", uh.ListUsers)

		// Messages
		ms := &msgsvc.Service{DB: db}
		mh := &msghandler.Handlers{Service: ms}
		mg := app.Group("/api/v1/messages", middleware.RequireAuth())
		mg.Get("/conversation", mh.Conversation)
		mg.Post("/send", mh.Send)

		// Listings
		ls := &listsvc.Service{DB: db}
		lh := &listhandler.Handlers{Service: ls}
		lg := app.Group("/api/v1/listings", middleware.RequireAuth())
		lg.Get("/get-all-listings", lh.GetAllListings)
		lg.Get("/get-my-listings", middleware.AuthorizePermission(constants.ViewMyListings), lh.GetMyListings)
		lg.Post("/create-listing", middleware.AuthorizePermission(constants.CreateListing), lh.CreateListing)
		lg.Post("/delete-listing", middleware.AuthorizePermission(constants.DeleteListing), lh.DeleteListing)

		// Requests
		rs := &reqsvc.Service{DB: db}
		rh := &reqhandler.Handlers{Service: rs}
		rg := app.Group("/api/v1/requests", middleware.RequireAuth())
		rg.Post("/create-request", middleware.AuthorizePermission(constants.RequestListing), rh.CreateRequest)
		rg.Get("/get-requests", middleware.AuthorizePermission(constants.ViewDealerRequests), rh.GetRequests)
		rg.Post("/respond", middleware.AuthorizePermission(constants.RespondRequest), rh.Respond)
		rg.Get("/accepted-history", middleware.AuthorizePermission(constants.ViewDealerRequests), rh.AcceptedHistory)

		// ListingEvents
		les := &lesvc.Service{DB: db}
		leh := &lehandler.Handlers{Service: les}
		leg := app.Group("/api/v1/listing-events", middleware.RequireAuth())
		leg.Get("/get-my-events", middleware.AuthorizePermission(constants.ViewListingEvents), leh.GetMyEvents)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
