package models

import (
	"time"
)

// Blog post lifecycle states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
	StatusScheduled = "scheduled"
)

// Blog post content types.
const (
	PostTypeRegular = "regular"
	PostTypeVideo   = "video"
	PostTypeGallery = "gallery"
	PostTypeQuote   = "quote"
	PostTypeLink    = "link"
)

// ValidStatuses enumerates every accepted value for BlogPost.Status.
var ValidStatuses = []string{StatusDraft, StatusPublished, StatusArchived, StatusScheduled}

// ValidPostTypes enumerates every accepted value for BlogPost.PostType.
var ValidPostTypes = []string{PostTypeRegular, PostTypeVideo, PostTypeGallery, PostTypeQuote, PostTypeLink}

// BlogPost represents a complete blog post with metadata. The row is
// addressable externally by BlogID (opaque short code) or Slug; the numeric
// ID never leaves the database layer.
type BlogPost struct {
	ID     uint   `json:"-" db:"id" gorm:"primaryKey;autoIncrement"`
	BlogID string `json:"blogId" db:"blog_id" gorm:"type:varchar(32);not null;uniqueIndex"`
	Slug   string `json:"slug" db:"slug" gorm:"type:varchar(200);not null;uniqueIndex"`

	Title    string     `json:"title" db:"title" gorm:"type:varchar(500);not null"`
	Content  string     `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt  *string    `json:"excerpt,omitempty" db:"excerpt" gorm:"type:varchar(1000)"`
	Category string     `json:"category" db:"category" gorm:"type:varchar(200);not null;index"`
	Tags     StringList `json:"tags,omitempty" db:"tags" gorm:"type:text"`
	PostType string     `json:"postType" db:"post_type" gorm:"type:varchar(20);not null;default:regular"`

	AuthorName         string  `json:"authorName" db:"author_name" gorm:"type:varchar(200);not null"`
	AuthorID           *string `json:"authorId,omitempty" db:"author_id" gorm:"type:varchar(200);index"`
	AuthorBio          *string `json:"authorBio,omitempty" db:"author_bio" gorm:"type:text"`
	AuthorProfileImage *string `json:"authorProfileImage,omitempty" db:"author_profile_image" gorm:"type:text"`

	FeaturedImage        *string `json:"featuredImage,omitempty" db:"featured_image" gorm:"type:text"`
	FeaturedImageAltText *string `json:"featuredImageAltText,omitempty" db:"featured_image_alt_text" gorm:"type:varchar(500)"`
	FeaturedImageWidth   *int    `json:"featuredImageWidth,omitempty" db:"featured_image_width"`
	FeaturedImageHeight  *int    `json:"featuredImageHeight,omitempty" db:"featured_image_height"`

	Status      string     `json:"status" db:"status" gorm:"type:varchar(20);not null;default:draft;index"`
	IsPublished bool       `json:"isPublished" db:"is_published" gorm:"not null;default:false;index"`
	IsFeatured  bool       `json:"isFeatured" db:"is_featured" gorm:"not null;default:false;index"`
	IsApproved  bool       `json:"isApproved" db:"is_approved" gorm:"not null;default:false"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty" db:"scheduled_at"`
	PublishedAt time.Time  `json:"publishedAt" db:"published_at" gorm:"not null"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" gorm:"not null;autoUpdateTime"`

	Views     int `json:"views" db:"views" gorm:"not null;default:0"`
	Comments  int `json:"comments" db:"comments" gorm:"not null;default:0"`
	Upvotes   int `json:"upvotes" db:"upvotes" gorm:"not null;default:0"`
	Downvotes int `json:"downvotes" db:"downvotes" gorm:"not null;default:0"`
	Shares    int `json:"shares" db:"shares" gorm:"not null;default:0"`

	RelatedBlogs StringList `json:"relatedBlogs,omitempty" db:"related_blogs" gorm:"type:text"`

	SeoTitle       *string `json:"seoTitle,omitempty" db:"seo_title" gorm:"type:varchar(500)"`
	SeoDescription *string `json:"seoDescription,omitempty" db:"seo_description" gorm:"type:text"`

	EstimatedReadTime int `json:"estimatedReadTime" db:"estimated_read_time" gorm:"not null;default:1"`
}

// TableName keeps the table name stable regardless of gorm pluralization.
func (BlogPost) TableName() string {
	return "blog_posts"
}

// IsValidStatus reports whether s is an accepted lifecycle state.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsValidPostType reports whether t is an accepted post type.
func IsValidPostType(t string) bool {
	for _, v := range ValidPostTypes {
		if v == t {
			return true
		}
	}
	return false
}
