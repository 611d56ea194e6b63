package domain

import "time"

// Blog represents a published article.
type Blog struct {
	Meta       `bson:",inline"`
	Title      string   `bson:"title" json:"title"`
	Slug       string   `bson:"slug" json:"slug"`
	Excerpt    string   `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content    string   `bson:"content" json:"content"`
	Author     string   `bson:"author,omitempty" json:"author,omitempty"`
	CoverImage string   `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Tags       []string `bson:"tags,omitempty" json:"tags,omitempty"`
}

// Testimonial represents a customer quote shown on the storefront.
type Testimonial struct {
	Meta        `bson:",inline"`
	Name        string `bson:"name" json:"name"`
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
	Message     string `bson:"message" json:"message"`
	Rating      int    `bson:"rating,omitempty" json:"rating,omitempty"`
	Avatar      string `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// TeamMember represents an entry on the team page.
type TeamMember struct {
	Meta     `bson:",inline"`
	Name     string `bson:"name" json:"name"`
	Role     string `bson:"role" json:"role"`
	Bio      string `bson:"bio,omitempty" json:"bio,omitempty"`
	Photo    string `bson:"photo,omitempty" json:"photo,omitempty"`
	LinkedIn string `bson:"linkedIn,omitempty" json:"linkedIn,omitempty"`
}

// OfferBanner represents a promotional banner slot.
type OfferBanner struct {
	Meta     `bson:",inline"`
	Title    string `bson:"title" json:"title"`
	Subtitle string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	Image    string `bson:"image,omitempty" json:"image,omitempty"`
	Link     string `bson:"link,omitempty" json:"link,omitempty"`
	Active   bool   `bson:"active" json:"active"`
}

// Offer is the site-wide offer. At most one document exists; writes upsert it.
type Offer struct {
	Meta        `bson:",inline"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Discount    string    `bson:"discount,omitempty" json:"discount,omitempty"`
	ValidTill   time.Time `bson:"validTill,omitempty" json:"validTill,omitempty"`
	Active      bool      `bson:"active" json:"active"`
}

// ForgotPasswordRequest records a password-reset request for admin follow-up.
type ForgotPasswordRequest struct {
	Meta     `bson:",inline"`
	Email    string `bson:"email" json:"email"`
	Token    string `bson:"token" json:"token"`
	Resolved bool   `bson:"resolved" json:"resolved"`
}
