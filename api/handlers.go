package api

import (
	"github.com/google/uuid"
	"github.com/mjcet-acm/site-backend/config"
	"github.com/mjcet-acm/site-backend/database"
	"github.com/mjcet-acm/site-backend/models"
)

// BlogStore is the persistence surface the blog handler depends on,
// satisfied by *database.BlogPostRepo.
type BlogStore interface {
	Create(post *models.BlogPost) error
	FindBySlug(slug string) (*models.BlogPost, error)
	FindByBlogID(blogID string) (*models.BlogPost, error)
	SlugExists(slug string, excludeID uint) (bool, error)
	List(f database.BlogFilter) ([]models.BlogPost, int64, error)
	Save(post *models.BlogPost) error
	ApplyEngagement(blogID string, d database.EngagementDelta) error
	IncrementViews(blogID string) error
	DeleteByID(id uint) error
}

// ProfileStore is the persistence surface the profile handler depends on,
// satisfied by *database.UserProfileRepo.
type ProfileStore interface {
	Create(profile *models.UserProfile) error
	FindByUUID(id uuid.UUID) (*models.UserProfile, error)
	FindAll() ([]models.UserProfile, error)
	UpdateFields(id uuid.UUID, fields map[string]any) (int64, error)
}

// initializeHandlers creates and returns all handlers organized in a
// routeHandlers struct
func initializeHandlers(db database.Database, cfg *config.Config) *routeHandlers {
	return &routeHandlers{
		blogPostHandler: newBlogPostHandler(db.BlogPostRepo()),
		profileHandler:  newProfileHandler(db.UserProfileRepo(), cfg.EmailDomain),
	}
}
