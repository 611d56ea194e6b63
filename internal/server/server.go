package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hallever/internal/config"
	"hallever/internal/database"
	"hallever/internal/domain"
	custommiddleware "hallever/internal/middleware"
	"hallever/internal/repository"
	"hallever/internal/service"
	"hallever/internal/storage"
	"hallever/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	rdb    *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, rdb *redis.Client, uploader *storage.Uploader) *Server {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.RateLimitMiddleware(rdb, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         "ratelimit",
	}, logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health(r.Context())
		if err := rdb.Ping(r.Context()).Err(); err != nil {
			health["redis"] = "down"
		} else {
			health["redis"] = "up"
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, health)
	})

	repos := repository.NewRepositories(db.DB())

	productSvc := service.NewProductService(repos.Products, uploader, logger)
	orderSvc := service.NewOrderService(repos.Orders, logger)
	cartSvc := service.NewCartService(repository.NewCartStore(rdb), productSvc, orderSvc, logger)
	careerSvc := service.NewCareerService(repos.Careers, logger)
	applicationSvc := service.NewApplicationService(repos.JobApplications, careerSvc, uploader, logger)
	offerSvc := service.NewOfferService(repos.Offers, logger)
	authSvc := service.NewAuthService(repos.Users, repos.ForgotPassword, cfg.JWT.Secret, logger)

	blogSvc := service.NewResource[*domain.Blog](repository.CollBlogs, repos.Blogs, logger)
	teamSvc := service.NewResource[*domain.TeamMember](repository.CollTeam, repos.Team, logger)
	leadSvc := service.NewResource[*domain.Lead](repository.CollLeads, repos.Leads, logger)
	testimonialSvc := service.NewResource[*domain.Testimonial](repository.CollTestimonials, repos.Testimonials, logger)
	bannerSvc := service.NewResource[*domain.OfferBanner](repository.CollOffersBanner, repos.OfferBanners, logger)
	resetSvc := service.NewResource[*domain.ForgotPasswordRequest](repository.CollForgotPassword, repos.ForgotPassword, logger)

	authMw := custommiddleware.AuthMiddleware(authSvc, logger)
	adminMw := custommiddleware.RequireAdmin(logger)

	transport.NewAuthHandler(authSvc, logger).RegisterRoutes(router, authMw)
	transport.NewProductHandler(productSvc, logger).RegisterRoutes(router, authMw, adminMw)
	transport.NewOrderHandler(orderSvc, logger).RegisterRoutes(router, authMw, adminMw)
	transport.NewCartHandler(cartSvc, logger).RegisterRoutes(router)
	transport.NewCareerHandler(careerSvc, applicationSvc, logger).RegisterRoutes(router, authMw, adminMw)
	transport.NewOfferHandler(offerSvc, logger).RegisterRoutes(router, authMw, adminMw)

	transport.NewImageResourceHandler[*domain.Blog](
		blogSvc, uploader,
		func() *domain.Blog { return &domain.Blog{} },
		func(b *domain.Blog, url string) { b.CoverImage = url },
		"coverImage", logger,
	).RegisterRoutes(router, "/api/routes/blogs", authMw, adminMw)

	transport.NewImageResourceHandler[*domain.TeamMember](
		teamSvc, uploader,
		func() *domain.TeamMember { return &domain.TeamMember{} },
		func(m *domain.TeamMember, url string) { m.Photo = url },
		"photo", logger,
	).RegisterRoutes(router, "/api/routes/teams", authMw, adminMw)

	transport.NewResourceHandler[*domain.Lead](
		leadSvc, func() *domain.Lead { return &domain.Lead{} }, logger,
	).WithHooks(
		func(l *domain.Lead) error { return l.Normalize() },
		domain.ValidateLeadFields,
	).RegisterRoutes(router, "/api/routes/leads", authMw, adminMw, transport.ResourceRoutes{PublicCreate: true})

	transport.NewResourceHandler[*domain.Testimonial](
		testimonialSvc, func() *domain.Testimonial { return &domain.Testimonial{} }, logger,
	).RegisterRoutes(router, "/api/routes/testimonials", authMw, adminMw, transport.ResourceRoutes{PublicRead: true})

	transport.NewResourceHandler[*domain.OfferBanner](
		bannerSvc, func() *domain.OfferBanner { return &domain.OfferBanner{} }, logger,
	).RegisterRoutes(router, "/api/routes/offersBanner", authMw, adminMw, transport.ResourceRoutes{PublicRead: true})

	transport.NewResourceHandler[*domain.ForgotPasswordRequest](
		resetSvc, func() *domain.ForgotPasswordRequest { return &domain.ForgotPasswordRequest{} }, logger,
	).RegisterRoutes(router, "/api/routes/forgotPassword", authMw, adminMw, transport.ResourceRoutes{})

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		rdb:    rdb,
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.db != nil {
		if err := s.db.Close(ctx); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
