package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler blogPostHandler
	profileHandler  profileHandler
}

// Response is the envelope every endpoint returns.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       any         `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the list envelope.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination derives the full envelope from the request page/limit and
// the total matching count.
func NewPagination(page, limit int, total int64) *Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{
		Page:        page,
		Limit:       limit,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && total > 0,
	}
}

// blogPayload is the create/update request body. Every field is a pointer
// so partial updates can distinguish "absent" from "zero"; dates arrive as
// strings so parse failures produce INVALID_DATE rather than a generic
// decode error.
type blogPayload struct {
	Title                *string   `json:"title"`
	Content              *string   `json:"content"`
	Excerpt              *string   `json:"excerpt"`
	Category             *string   `json:"category"`
	Tags                 *[]string `json:"tags"`
	PostType             *string   `json:"postType"`
	Slug                 *string   `json:"slug"`
	AuthorName           *string   `json:"authorName"`
	AuthorID             *string   `json:"authorId"`
	AuthorBio            *string   `json:"authorBio"`
	AuthorProfileImage   *string   `json:"authorProfileImage"`
	FeaturedImage        *string   `json:"featuredImage"`
	FeaturedImageAltText *string   `json:"featuredImageAltText"`
	FeaturedImageWidth   *int      `json:"featuredImageWidth"`
	FeaturedImageHeight  *int      `json:"featuredImageHeight"`
	Status               *string   `json:"status"`
	IsPublished          *bool     `json:"isPublished"`
	IsFeatured           *bool     `json:"isFeatured"`
	IsApproved           *bool     `json:"isApproved"`
	ScheduledAt          *string   `json:"scheduledAt"`
	PublishedAt          *string   `json:"publishedAt"`
	RelatedBlogs         *[]string `json:"relatedBlogs"`
	SeoTitle             *string   `json:"seoTitle"`
	SeoDescription       *string   `json:"seoDescription"`
}

// engagementPayload carries signed counter deltas.
type engagementPayload struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Shares    int `json:"shares"`
	Comments  int `json:"comments"`
}

// profilePayload is the profile create/update request body.
type profilePayload struct {
	UUID        *string `json:"uuid"`
	Email       *string `json:"email"`
	FullName    *string `json:"full_name"`
	IsActive    *bool   `json:"is_active"`
	LastLogin   *string `json:"last_login"`
	AcmMemberID *string `json:"acm_member_id"`
	MemberType  *string `json:"member_type"`
	RoleType    *string `json:"role_type"`
}
