package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mjcet-acm/site-backend/database"
	"github.com/mjcet-acm/site-backend/errs"
	"github.com/mjcet-acm/site-backend/models"
	"github.com/mjcet-acm/site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     BlogStore
}

func newBlogPostHandler(store BlogStore) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

func decodeBlogPayload(r *http.Request) (blogPayload, *errs.ApiErr) {
	var payload blogPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, errs.NewBadRequestError(errs.CodeInvalidPayload, "malformed request body")
	}
	return payload, nil
}

// applyPayload validates every field present in the payload and copies it
// onto the post. Content changes recompute the estimated read time; an
// archived status forces the post unpublished.
func applyPayload(post *models.BlogPost, p blogPayload) *errs.ApiErr {
	if p.Title != nil {
		if err := services.ValidateTitle(*p.Title); err != nil {
			return err
		}
		post.Title = *p.Title
	}
	if p.Content != nil {
		if err := services.ValidateContent(*p.Content); err != nil {
			return err
		}
		post.Content = *p.Content
		post.EstimatedReadTime = services.EstimateReadTime(*p.Content)
	}
	if p.Excerpt != nil {
		if err := services.ValidateExcerpt(*p.Excerpt); err != nil {
			return err
		}
		post.Excerpt = p.Excerpt
	}
	if p.Category != nil {
		normalized := services.Slugify(*p.Category)
		if normalized == "" {
			return errs.NewValidationError(errs.CodeMissingCategory, "category", "category is required")
		}
		post.Category = normalized
	}
	if p.Tags != nil {
		post.Tags = models.StringList(*p.Tags)
	}
	if p.PostType != nil {
		if !models.IsValidPostType(*p.PostType) {
			return errs.NewValidationError(errs.CodeInvalidPostType, "postType", "postType must be one of: "+strings.Join(models.ValidPostTypes, ", "))
		}
		post.PostType = *p.PostType
	}
	if p.AuthorName != nil {
		if strings.TrimSpace(*p.AuthorName) == "" {
			return errs.NewValidationError(errs.CodeMissingAuthorName, "authorName", "authorName is required")
		}
		post.AuthorName = *p.AuthorName
	}
	if p.AuthorID != nil {
		// authorId may be an email; only then does it get email validation
		if strings.Contains(*p.AuthorID, "@") {
			if err := services.ValidateEmail("authorId", *p.AuthorID); err != nil {
				return err
			}
		}
		post.AuthorID = p.AuthorID
	}
	if p.AuthorBio != nil {
		post.AuthorBio = p.AuthorBio
	}
	if p.AuthorProfileImage != nil {
		if err := services.ValidateURL("authorProfileImage", *p.AuthorProfileImage); err != nil {
			return err
		}
		post.AuthorProfileImage = p.AuthorProfileImage
	}
	if p.FeaturedImage != nil {
		if err := services.ValidateURL("featuredImage", *p.FeaturedImage); err != nil {
			return err
		}
		post.FeaturedImage = p.FeaturedImage
	}
	if p.FeaturedImageAltText != nil {
		post.FeaturedImageAltText = p.FeaturedImageAltText
	}
	if p.FeaturedImageWidth != nil {
		if err := services.ValidateImageDimension("featuredImageWidth", *p.FeaturedImageWidth); err != nil {
			return err
		}
		post.FeaturedImageWidth = p.FeaturedImageWidth
	}
	if p.FeaturedImageHeight != nil {
		if err := services.ValidateImageDimension("featuredImageHeight", *p.FeaturedImageHeight); err != nil {
			return err
		}
		post.FeaturedImageHeight = p.FeaturedImageHeight
	}
	if p.Status != nil {
		if !models.IsValidStatus(*p.Status) {
			return errs.NewValidationError(errs.CodeInvalidStatus, "status", "status must be one of: "+strings.Join(models.ValidStatuses, ", "))
		}
		post.Status = *p.Status
	}
	if p.IsPublished != nil {
		post.IsPublished = *p.IsPublished
	}
	if p.IsFeatured != nil {
		post.IsFeatured = *p.IsFeatured
	}
	if p.IsApproved != nil {
		post.IsApproved = *p.IsApproved
	}
	if p.ScheduledAt != nil {
		t, err := services.ParseDate("scheduledAt", *p.ScheduledAt)
		if err != nil {
			return err
		}
		post.ScheduledAt = &t
	}
	if p.PublishedAt != nil {
		t, err := services.ParseDate("publishedAt", *p.PublishedAt)
		if err != nil {
			return err
		}
		post.PublishedAt = t
	}
	if p.RelatedBlogs != nil {
		post.RelatedBlogs = models.StringList(*p.RelatedBlogs)
	}
	if p.SeoTitle != nil {
		post.SeoTitle = p.SeoTitle
	}
	if p.SeoDescription != nil {
		post.SeoDescription = p.SeoDescription
	}

	// archived posts are never published
	if post.Status == models.StatusArchived {
		post.IsPublished = false
	}
	return nil
}

// resolveSlug picks the slug for a new post: an explicit slug must be
// valid and free, a derived slug gets random suffixes until one is free,
// bounded by the retry limit. The unique index still backstops races.
func (h blogPostHandler) resolveSlug(p blogPayload, title string) (string, *errs.ApiErr) {
	if p.Slug != nil {
		if err := services.ValidateSlug(*p.Slug); err != nil {
			return "", err
		}
		taken, err := h.store.SlugExists(*p.Slug, 0)
		if err != nil {
			return "", errs.NewInternalError(errs.CodeInternal, "failed to check slug availability")
		}
		if taken {
			return "", errs.NewConflictError(errs.CodeDuplicateSlug, "slug is already in use")
		}
		return *p.Slug, nil
	}

	base := services.Slugify(title)
	if base == "" {
		base = "post"
	}

	candidate := base
	for attempt := 0; attempt < services.SlugRetryLimit; attempt++ {
		taken, err := h.store.SlugExists(candidate, 0)
		if err != nil {
			return "", errs.NewInternalError(errs.CodeInternal, "failed to check slug availability")
		}
		if !taken {
			return candidate, nil
		}
		slugRetries.Inc()
		candidate = services.WithSuffix(base)
	}
	return "", errs.NewInternalError(errs.CodeSlugExhausted, "could not generate a unique slug")
}

// createBlogPost validates the full payload and persists a new post.
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, apiErr := decodeBlogPayload(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if payload.Title == nil || strings.TrimSpace(*payload.Title) == "" {
			h.responder.WriteError(w, errs.NewValidationError(errs.CodeMissingTitle, "title", "title is required"))
			return
		}
		if payload.Content == nil || strings.TrimSpace(*payload.Content) == "" {
			h.responder.WriteError(w, errs.NewValidationError(errs.CodeMissingContent, "content", "content is required"))
			return
		}
		if payload.Category == nil || strings.TrimSpace(*payload.Category) == "" {
			h.responder.WriteError(w, errs.NewValidationError(errs.CodeMissingCategory, "category", "category is required"))
			return
		}
		if payload.AuthorName == nil || strings.TrimSpace(*payload.AuthorName) == "" {
			h.responder.WriteError(w, errs.NewValidationError(errs.CodeMissingAuthorName, "authorName", "authorName is required"))
			return
		}

		post := models.BlogPost{
			BlogID:      services.NewBlogID(),
			PostType:    models.PostTypeRegular,
			Status:      models.StatusDraft,
			PublishedAt: time.Now().UTC(),
		}
		if err := applyPayload(&post, payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		slug, slugErr := h.resolveSlug(payload, post.Title)
		if slugErr != nil {
			h.responder.WriteError(w, slugErr)
			return
		}
		post.Slug = slug

		if err := h.store.Create(&post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog post", err))
			return
		}

		h.logger.Info().Str("blogId", post.BlogID).Str("slug", post.Slug).Msg("blog post created")
		h.responder.WriteSuccess(w, http.StatusCreated, "blog post created successfully", post)
	}
}

// parseListFilter reads the shared filter/sort/paginate query contract.
func parseListFilter(r *http.Request) (database.BlogFilter, *errs.ApiErr) {
	q := r.URL.Query()
	f := database.BlogFilter{
		Page:     1,
		Limit:    10,
		SortBy:   "createdAt",
		SortDesc: true,
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return f, errs.NewValidationError(errs.CodeInvalidPagination, "page", "page must be a positive integer")
		}
		f.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return f, errs.NewValidationError(errs.CodeInvalidPagination, "limit", "limit must be between 1 and 100")
		}
		f.Limit = n
	}
	if v := q.Get("sortBy"); v != "" {
		f.SortBy = v
	}
	if v := q.Get("sortOrder"); v != "" {
		f.SortDesc = !strings.EqualFold(v, "asc")
	}
	if v := q.Get("status"); v != "" {
		if !models.IsValidStatus(v) {
			return f, errs.NewValidationError(errs.CodeInvalidStatus, "status", "unknown status filter")
		}
		f.Status = v
	}
	if v := q.Get("category"); v != "" {
		f.Category = services.Slugify(v)
	}
	if v := q.Get("author"); v != "" {
		f.AuthorID = v
	}
	if v := q.Get("isPublished"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errs.NewValidationError(errs.CodeInvalidPayload, "isPublished", "isPublished must be a boolean")
		}
		f.Published = &b
	}
	if v := q.Get("isFeatured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errs.NewValidationError(errs.CodeInvalidPayload, "isFeatured", "isFeatured must be a boolean")
		}
		f.Featured = &b
	}
	f.Search = q.Get("search")

	return f, nil
}

func (h blogPostHandler) listWithFilter(w http.ResponseWriter, f database.BlogFilter) {
	posts, total, err := h.store.List(f)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("list", "blog posts", err))
		return
	}
	h.responder.WritePage(w, "blog posts fetched successfully", posts, NewPagination(f.Page, f.Limit, total))
}

// getAllBlogPosts lists posts with the full filter/sort/paginate contract.
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, apiErr := parseListFilter(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		h.listWithFilter(w, f)
	}
}

// getBlogPostsByCategory reuses the list contract scoped to one category.
func (h blogPostHandler) getBlogPostsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, apiErr := parseListFilter(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		f.Category = services.Slugify(chi.URLParam(r, "category"))
		h.listWithFilter(w, f)
	}
}

// getBlogPostsByAuthor reuses the list contract scoped to one author.
func (h blogPostHandler) getBlogPostsByAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, apiErr := parseListFilter(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		f.AuthorID = chi.URLParam(r, "authorId")
		h.listWithFilter(w, f)
	}
}

// getFeaturedBlogPosts lists featured published posts.
func (h blogPostHandler) getFeaturedBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, apiErr := parseListFilter(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		featured := true
		published := true
		f.Featured = &featured
		f.Published = &published
		h.listWithFilter(w, f)
	}
}

// getBlogPostBySlug fetches one post and bumps its view counter unless
// disabled via ?count_view=false. The increment is best effort: a failure
// is logged, never surfaced.
func (h blogPostHandler) getBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		post, err := h.store.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		if r.URL.Query().Get("count_view") != "false" {
			if err := h.store.IncrementViews(post.BlogID); err != nil {
				h.logger.Error().Err(err).Str("blogId", post.BlogID).Msg("failed to increment view count")
			} else {
				post.Views++
			}
		}

		h.responder.WriteSuccess(w, http.StatusOK, "blog post fetched successfully", post)
	}
}

// getBlogPostByID fetches one post by its external identifier.
func (h blogPostHandler) getBlogPostByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID := chi.URLParam(r, "blogId")

		post, err := h.store.FindByBlogID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "blog post fetched successfully", post)
	}
}

// updateBlogPost applies a partial update: only fields present in the
// payload are validated and changed.
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID := chi.URLParam(r, "blogId")

		post, err := h.store.FindByBlogID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		payload, apiErr := decodeBlogPayload(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		// slug changes are re-validated against every other post
		if payload.Slug != nil && *payload.Slug != post.Slug {
			if err := services.ValidateSlug(*payload.Slug); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			taken, err := h.store.SlugExists(*payload.Slug, post.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check slug for", "blog post", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.NewConflictError(errs.CodeDuplicateSlug, "slug is already in use"))
				return
			}
			post.Slug = *payload.Slug
		}

		if err := applyPayload(post, payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Save(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog post", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "blog post updated successfully", post)
	}
}

// updateViews bumps the view counter by one.
func (h blogPostHandler) updateViews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID := chi.URLParam(r, "blogId")

		post, err := h.store.FindByBlogID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		if err := h.store.IncrementViews(blogID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update views for", "blog post", err))
			return
		}
		post.Views++

		h.responder.WriteSuccess(w, http.StatusOK, "view count updated successfully", post)
	}
}

// updateEngagement applies signed deltas to the engagement counters,
// clamped at zero in the store.
func (h blogPostHandler) updateEngagement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID := chi.URLParam(r, "blogId")

		var payload engagementPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(errs.CodeInvalidPayload, "malformed request body"))
			return
		}

		post, err := h.store.FindByBlogID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		delta := database.EngagementDelta{
			Upvotes:   payload.Upvotes,
			Downvotes: payload.Downvotes,
			Shares:    payload.Shares,
			Comments:  payload.Comments,
		}
		if err := h.store.ApplyEngagement(blogID, delta); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update engagement for", "blog post", err))
			return
		}

		updated, err := h.store.FindByBlogID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "engagement updated successfully", updated)
	}
}

// togglePublish flips isPublished and derives status. Transitioning to
// published stamps publishedAt.
func (h blogPostHandler) togglePublish() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID := chi.URLParam(r, "blogId")

		post, err := h.store.FindByBlogID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		if post.IsPublished {
			post.IsPublished = false
			post.Status = models.StatusDraft
		} else {
			post.IsPublished = true
			post.Status = models.StatusPublished
			post.PublishedAt = time.Now().UTC()
		}

		if err := h.store.Save(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog post", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "publish state updated successfully", post)
	}
}

func (h blogPostHandler) archive(w http.ResponseWriter, post *models.BlogPost) {
	if post.Status == models.StatusArchived {
		h.responder.WriteError(w, errs.NewBadRequestError(errs.CodeAlreadyArchived, "blog post is already archived"))
		return
	}

	post.Status = models.StatusArchived
	post.IsPublished = false

	if err := h.store.Save(post); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("archive", "blog post", err))
		return
	}

	h.responder.WriteSuccess(w, http.StatusOK, "blog post archived successfully", post)
}

// archiveBlogPost soft-deletes a post by blogId.
func (h blogPostHandler) archiveBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID := chi.URLParam(r, "blogId")

		post, err := h.store.FindByBlogID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		h.archive(w, post)
	}
}

// archiveBlogPostBySlug soft-deletes a post by slug.
func (h blogPostHandler) archiveBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		post, err := h.store.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		h.archive(w, post)
	}
}

// restoreBlogPost moves an archived post back to draft.
func (h blogPostHandler) restoreBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID := chi.URLParam(r, "blogId")

		post, err := h.store.FindByBlogID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		if post.Status != models.StatusArchived {
			h.responder.WriteError(w, errs.NewBadRequestError(errs.CodeNotArchived, "blog post is not archived"))
			return
		}

		post.Status = models.StatusDraft

		if err := h.store.Save(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("restore", "blog post", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "blog post restored successfully", post)
	}
}

func (h blogPostHandler) hardDelete(w http.ResponseWriter, post *models.BlogPost) {
	if err := h.store.DeleteByID(post.ID); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("delete", "blog post", err))
		return
	}

	h.logger.Info().Str("blogId", post.BlogID).Str("slug", post.Slug).Msg("blog post deleted")
	h.responder.WriteSuccess(w, http.StatusOK, "blog post deleted successfully", nil)
}

// deleteBlogPost permanently removes a post by blogId.
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID := chi.URLParam(r, "blogId")

		post, err := h.store.FindByBlogID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		h.hardDelete(w, post)
	}
}

// deleteBlogPostBySlug permanently removes a post by slug.
func (h blogPostHandler) deleteBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		post, err := h.store.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError(errs.CodeBlogNotFound, "blog post not found"))
			return
		}

		h.hardDelete(w, post)
	}
}
