package repository

import (
	"hallever/internal/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names. The storefront client addresses entities by these names,
// so they are fixed here in one place.
const (
	CollProducts        = "products"
	CollBlogs           = "blogs"
	CollCareers         = "careers"
	CollOrders          = "orders"
	CollLeads           = "leads"
	CollTestimonials    = "testimonials"
	CollTeam            = "team"
	CollOffersBanner    = "offersBanner"
	CollOffers          = "offers"
	CollForgotPassword  = "forgotPassword"
	CollJobApplications = "jobApplications"
	CollUsers           = "users"
)

// Repositories bundles every collection repository for wiring.
type Repositories struct {
	Products        *ProductRepository
	Blogs           *Collection[*domain.Blog]
	Careers         *CareerRepository
	Orders          *Collection[*domain.Order]
	Leads           *Collection[*domain.Lead]
	Testimonials    *Collection[*domain.Testimonial]
	Team            *Collection[*domain.TeamMember]
	OfferBanners    *Collection[*domain.OfferBanner]
	Offers          *OfferRepository
	ForgotPassword  *Collection[*domain.ForgotPasswordRequest]
	JobApplications *JobApplicationRepository
	Users           *UserRepository
}

// NewRepositories builds all repositories over one database handle.
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Products:        NewProductRepository(db),
		Blogs:           NewCollection(db, CollBlogs, func() *domain.Blog { return &domain.Blog{} }),
		Careers:         NewCareerRepository(db),
		Orders:          NewCollection(db, CollOrders, func() *domain.Order { return &domain.Order{} }),
		Leads:           NewCollection(db, CollLeads, func() *domain.Lead { return &domain.Lead{} }),
		Testimonials:    NewCollection(db, CollTestimonials, func() *domain.Testimonial { return &domain.Testimonial{} }),
		Team:            NewCollection(db, CollTeam, func() *domain.TeamMember { return &domain.TeamMember{} }),
		OfferBanners:    NewCollection(db, CollOffersBanner, func() *domain.OfferBanner { return &domain.OfferBanner{} }),
		Offers:          NewOfferRepository(db),
		ForgotPassword:  NewCollection(db, CollForgotPassword, func() *domain.ForgotPasswordRequest { return &domain.ForgotPasswordRequest{} }),
		JobApplications: NewJobApplicationRepository(db),
		Users:           NewUserRepository(db),
	}
}
