package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mjcet-acm/site-backend/models"
	"gorm.io/gorm"
)

// BlogFilter describes the list contract: optional single-dimension
// filters, free-text search, offset pagination and sorting.
type BlogFilter struct {
	Category  string
	Status    string
	AuthorID  string
	Published *bool
	Featured  *bool
	Approved  *bool
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortDesc  bool
}

// EngagementDelta holds signed adjustments to the engagement counters.
type EngagementDelta struct {
	Upvotes   int
	Downvotes int
	Shares    int
	Comments  int
}

// sortColumns maps client-facing sort keys to real columns. Anything not
// listed falls back to created_at.
var sortColumns = map[string]string{
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
	"publishedAt":       "published_at",
	"scheduledAt":       "scheduled_at",
	"title":             "title",
	"category":          "category",
	"views":             "views",
	"upvotes":           "upvotes",
	"downvotes":         "downvotes",
	"shares":            "shares",
	"comments":          "comments",
	"estimatedReadTime": "estimated_read_time",
}

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// Create inserts a new blog post into the database
func (r *BlogPostRepo) Create(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// FindBySlug returns a blog post by slug, or nil when absent.
func (r *BlogPostRepo) FindBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByBlogID returns a blog post by its external identifier, or nil when
// absent.
func (r *BlogPostRepo) FindByBlogID(blogID string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Where("blog_id = ?", blogID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// SlugExists reports whether any post other than excludeID already uses
// the slug. The unique index remains the source of truth under races.
func (r *BlogPostRepo) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.Model(&models.BlogPost{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns the filtered page of posts plus the total matching count.
func (r *BlogPostRepo) List(f BlogFilter) ([]models.BlogPost, int64, error) {
	q := r.db.Model(&models.BlogPost{})

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.Published != nil {
		q = q.Where("is_published = ?", *f.Published)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	if f.Approved != nil {
		q = q.Where("is_approved = ?", *f.Approved)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ? OR LOWER(author_name) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if f.SortDesc {
		direction = "DESC"
	}

	var posts []models.BlogPost
	err := q.Order(fmt.Sprintf("%s %s", column, direction)).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Save writes the full record back.
func (r *BlogPostRepo) Save(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// ApplyEngagement adds the deltas to the engagement counters in a single
// statement, clamping each counter at zero.
func (r *BlogPostRepo) ApplyEngagement(blogID string, d EngagementDelta) error {
	return r.db.Model(&models.BlogPost{}).
		Where("blog_id = ?", blogID).
		Updates(map[string]any{
			"upvotes":   gorm.Expr("GREATEST(upvotes + ?, 0)", d.Upvotes),
			"downvotes": gorm.Expr("GREATEST(downvotes + ?, 0)", d.Downvotes),
			"shares":    gorm.Expr("GREATEST(shares + ?, 0)", d.Shares),
			"comments":  gorm.Expr("GREATEST(comments + ?, 0)", d.Comments),
		}).Error
}

// IncrementViews bumps the view counter without touching updated_at.
func (r *BlogPostRepo) IncrementViews(blogID string) error {
	return r.db.Model(&models.BlogPost{}).
		Where("blog_id = ?", blogID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// DeleteByID removes a blog post permanently.
func (r *BlogPostRepo) DeleteByID(id uint) error {
	return r.db.Delete(&models.BlogPost{}, id).Error
}
