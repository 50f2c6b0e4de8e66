package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mjcet-acm/site-backend/models"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func doRequest(t *testing.T, router *chi.Mux, method, path string, body any) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func dataAsPost(t *testing.T, resp Response) models.BlogPost {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("remarshaling data: %v", err)
	}
	var post models.BlogPost
	if err := json.Unmarshal(raw, &post); err != nil {
		t.Fatalf("unmarshaling data into BlogPost: %v", err)
	}
	return post
}

func validPayload() map[string]any {
	return map[string]any{
		"title":      "Hello World",
		"content":    "Some useful words about our upcoming hackathon and workshops.",
		"category":   "Events",
		"authorName": "Ayesha Khan",
	}
}

func createPost(t *testing.T, router *chi.Mux, payload map[string]any) models.BlogPost {
	t.Helper()
	w, resp := doRequest(t, router, http.MethodPost, "/blog/create-post", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	return dataAsPost(t, resp)
}

func TestCreateBlogPostDefaults(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())

	post := createPost(t, router, validPayload())

	if post.Slug != "hello-world" {
		t.Errorf("slug = %q, want %q", post.Slug, "hello-world")
	}
	if !strings.HasPrefix(post.BlogID, "blog_") {
		t.Errorf("blogId = %q, want blog_ prefix", post.BlogID)
	}
	if post.Status != models.StatusDraft {
		t.Errorf("status = %q, want draft", post.Status)
	}
	if post.PostType != models.PostTypeRegular {
		t.Errorf("postType = %q, want regular", post.PostType)
	}
	if post.Category != "events" {
		t.Errorf("category = %q, want normalized %q", post.Category, "events")
	}
	if post.EstimatedReadTime != 1 {
		t.Errorf("estimatedReadTime = %d, want 1", post.EstimatedReadTime)
	}
	if post.PublishedAt.IsZero() {
		t.Error("publishedAt not defaulted")
	}
}

func TestCreateBlogPostSlugCollision(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())

	first := createPost(t, router, validPayload())
	second := createPost(t, router, validPayload())

	if first.Slug != "hello-world" {
		t.Fatalf("first slug = %q", first.Slug)
	}
	if !strings.HasPrefix(second.Slug, "hello-world-") {
		t.Errorf("second slug = %q, want hello-world-<suffix>", second.Slug)
	}
	if second.Slug == first.Slug {
		t.Error("second slug collides with first")
	}
	if second.BlogID == first.BlogID {
		t.Error("blogId reused")
	}
}

func TestCreateBlogPostExplicitSlug(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())

	payload := validPayload()
	payload["slug"] = "welcome-post"
	post := createPost(t, router, payload)
	if post.Slug != "welcome-post" {
		t.Fatalf("slug = %q, want welcome-post", post.Slug)
	}

	// an explicit duplicate is a conflict, not a retry
	other := validPayload()
	other["slug"] = "welcome-post"
	w, resp := doRequest(t, router, http.MethodPost, "/blog/create-post", other)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate explicit slug: status = %d, want 409", w.Code)
	}
	if resp.Error != "DUPLICATE_SLUG" {
		t.Errorf("error = %q, want DUPLICATE_SLUG", resp.Error)
	}
}

func TestCreateBlogPostValidation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(map[string]any)
		wantStatus int
		wantCode   string
	}{
		{"missing title", func(p map[string]any) { delete(p, "title") }, 400, "MISSING_TITLE"},
		{"blank title", func(p map[string]any) { p["title"] = "   " }, 400, "MISSING_TITLE"},
		{"missing content", func(p map[string]any) { delete(p, "content") }, 400, "MISSING_CONTENT"},
		{"missing category", func(p map[string]any) { delete(p, "category") }, 400, "MISSING_CATEGORY"},
		{"missing author", func(p map[string]any) { delete(p, "authorName") }, 400, "MISSING_AUTHOR_NAME"},
		{"title too long", func(p map[string]any) { p["title"] = strings.Repeat("a", 501) }, 400, "TITLE_TOO_LONG"},
		{"excerpt too long", func(p map[string]any) { p["excerpt"] = strings.Repeat("a", 1001) }, 400, "EXCERPT_TOO_LONG"},
		{"bad featured image", func(p map[string]any) { p["featuredImage"] = "not-a-url" }, 400, "INVALID_URL"},
		{"bad image width", func(p map[string]any) { p["featuredImageWidth"] = 0 }, 400, "INVALID_IMAGE_DIMENSIONS"},
		{"bad image height", func(p map[string]any) { p["featuredImageHeight"] = 20000 }, 400, "INVALID_IMAGE_DIMENSIONS"},
		{"bad status", func(p map[string]any) { p["status"] = "live" }, 400, "INVALID_STATUS"},
		{"bad post type", func(p map[string]any) { p["postType"] = "podcast" }, 400, "INVALID_POST_TYPE"},
		{"bad published date", func(p map[string]any) { p["publishedAt"] = "yesterday" }, 400, "INVALID_DATE"},
		{"bad scheduled date", func(p map[string]any) { p["scheduledAt"] = "soon" }, 400, "INVALID_DATE"},
		{"bad explicit slug", func(p map[string]any) { p["slug"] = "Hello World" }, 400, "INVALID_SLUG_FORMAT"},
		{"bad author email", func(p map[string]any) { p["authorId"] = "broken@" }, 400, "INVALID_EMAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
			payload := validPayload()
			tt.mutate(payload)

			w, resp := doRequest(t, router, http.MethodPost, "/blog/create-post", payload)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp.Error != tt.wantCode {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantCode)
			}
			if resp.Success {
				t.Error("success = true on a validation failure")
			}
		})
	}
}

func TestGetBlogPostBySlug(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	w, resp := doRequest(t, router, http.MethodGet, "/blog/get/"+created.Slug, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	post := dataAsPost(t, resp)
	if post.Views != 1 {
		t.Errorf("views = %d, want 1 after read", post.Views)
	}

	// a second read with counting disabled leaves the counter alone
	_, resp = doRequest(t, router, http.MethodGet, "/blog/get/"+created.Slug+"?count_view=false", nil)
	post = dataAsPost(t, resp)
	if post.Views != 1 {
		t.Errorf("views = %d, want 1 with count_view=false", post.Views)
	}

	w, resp = doRequest(t, router, http.MethodGet, "/blog/get/no-such-slug", nil)
	if w.Code != http.StatusNotFound || resp.Error != "BLOG_NOT_FOUND" {
		t.Errorf("missing slug: status = %d, error = %q", w.Code, resp.Error)
	}
}

func TestGetBlogPostByID(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	w, resp := doRequest(t, router, http.MethodGet, "/blog/get-by-id/"+created.BlogID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if post := dataAsPost(t, resp); post.BlogID != created.BlogID {
		t.Errorf("blogId = %q, want %q", post.BlogID, created.BlogID)
	}

	w, resp = doRequest(t, router, http.MethodGet, "/blog/get-by-id/blog_missing0000", nil)
	if w.Code != http.StatusNotFound || resp.Error != "BLOG_NOT_FOUND" {
		t.Errorf("missing id: status = %d, error = %q", w.Code, resp.Error)
	}
}

func TestUpdateBlogPostPartial(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	w, resp := doRequest(t, router, http.MethodPatch, "/blog/update/"+created.BlogID,
		map[string]any{"excerpt": "new"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	post := dataAsPost(t, resp)
	if post.Excerpt == nil || *post.Excerpt != "new" {
		t.Error("excerpt not updated")
	}
	if post.Title != created.Title || post.Content != created.Content || post.Slug != created.Slug {
		t.Error("partial update touched unrelated fields")
	}
}

func TestUpdateBlogPostContentRecomputesReadTime(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	longContent := strings.TrimSpace(strings.Repeat("word ", 401))
	_, resp := doRequest(t, router, http.MethodPatch, "/blog/update/"+created.BlogID,
		map[string]any{"content": longContent})

	if post := dataAsPost(t, resp); post.EstimatedReadTime != 3 {
		t.Errorf("estimatedReadTime = %d, want 3 for 401 words", post.EstimatedReadTime)
	}
}

func TestUpdateBlogPostSlugConflict(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	first := createPost(t, router, validPayload())

	other := validPayload()
	other["title"] = "Another Post"
	second := createPost(t, router, other)

	w, resp := doRequest(t, router, http.MethodPatch, "/blog/update/"+second.BlogID,
		map[string]any{"slug": first.Slug})
	if w.Code != http.StatusConflict || resp.Error != "DUPLICATE_SLUG" {
		t.Errorf("status = %d, error = %q, want 409 DUPLICATE_SLUG", w.Code, resp.Error)
	}

	// renaming to a free slug is allowed after re-validation
	w, resp = doRequest(t, router, http.MethodPatch, "/blog/update/"+second.BlogID,
		map[string]any{"slug": "fresh-slug"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if post := dataAsPost(t, resp); post.Slug != "fresh-slug" {
		t.Errorf("slug = %q, want fresh-slug", post.Slug)
	}

	w, resp = doRequest(t, router, http.MethodPatch, "/blog/update/blog_missing0000",
		map[string]any{"excerpt": "x"})
	if w.Code != http.StatusNotFound || resp.Error != "BLOG_NOT_FOUND" {
		t.Errorf("missing post: status = %d, error = %q", w.Code, resp.Error)
	}
}

func TestUpdateEngagementClampsAtZero(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	_, resp := doRequest(t, router, http.MethodPatch, "/blog/update/engagement/"+created.BlogID,
		map[string]any{"upvotes": 5, "downvotes": 3, "shares": 2, "comments": 1})
	post := dataAsPost(t, resp)
	if post.Upvotes != 5 || post.Downvotes != 3 || post.Shares != 2 || post.Comments != 1 {
		t.Fatalf("counters = %d/%d/%d/%d, want 5/3/2/1",
			post.Upvotes, post.Downvotes, post.Shares, post.Comments)
	}

	_, resp = doRequest(t, router, http.MethodPatch, "/blog/update/engagement/"+created.BlogID,
		map[string]any{"downvotes": -1000})
	post = dataAsPost(t, resp)
	if post.Downvotes != 0 {
		t.Errorf("downvotes = %d, want clamped to 0", post.Downvotes)
	}
	if post.Upvotes != 5 {
		t.Errorf("upvotes = %d, want untouched 5", post.Upvotes)
	}
}

func TestUpdateViews(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	w, resp := doRequest(t, router, http.MethodPatch, "/blog/update/views/"+created.BlogID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if post := dataAsPost(t, resp); post.Views != 1 {
		t.Errorf("views = %d, want 1", post.Views)
	}
}

func TestTogglePublish(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	_, resp := doRequest(t, router, http.MethodPatch, "/blog/toggle/publish/"+created.BlogID, nil)
	post := dataAsPost(t, resp)
	if !post.IsPublished || post.Status != models.StatusPublished {
		t.Errorf("after publish: isPublished=%v status=%q", post.IsPublished, post.Status)
	}
	if post.PublishedAt.IsZero() {
		t.Error("publishedAt not stamped on publish")
	}

	_, resp = doRequest(t, router, http.MethodPatch, "/blog/toggle/publish/"+created.BlogID, nil)
	post = dataAsPost(t, resp)
	if post.IsPublished || post.Status != models.StatusDraft {
		t.Errorf("after unpublish: isPublished=%v status=%q", post.IsPublished, post.Status)
	}
}

func TestArchiveAndRestore(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	// publish first so archiving demonstrably unpublishes
	doRequest(t, router, http.MethodPatch, "/blog/toggle/publish/"+created.BlogID, nil)

	w, resp := doRequest(t, router, http.MethodPatch, "/blog/archive/"+created.BlogID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("archive status = %d", w.Code)
	}
	post := dataAsPost(t, resp)
	if post.Status != models.StatusArchived || post.IsPublished {
		t.Errorf("after archive: status=%q isPublished=%v", post.Status, post.IsPublished)
	}

	w, resp = doRequest(t, router, http.MethodPatch, "/blog/archive/"+created.BlogID, nil)
	if w.Code != http.StatusBadRequest || resp.Error != "ALREADY_ARCHIVED" {
		t.Errorf("double archive: status = %d, error = %q", w.Code, resp.Error)
	}

	w, resp = doRequest(t, router, http.MethodPatch, "/blog/restore/"+created.BlogID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("restore status = %d", w.Code)
	}
	if post := dataAsPost(t, resp); post.Status != models.StatusDraft {
		t.Errorf("after restore: status = %q, want draft", post.Status)
	}

	w, resp = doRequest(t, router, http.MethodPatch, "/blog/restore/"+created.BlogID, nil)
	if w.Code != http.StatusBadRequest || resp.Error != "NOT_ARCHIVED" {
		t.Errorf("restore of non-archived: status = %d, error = %q", w.Code, resp.Error)
	}
}

func TestArchiveBySlug(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	w, resp := doRequest(t, router, http.MethodPatch, "/blog/archive/slug/"+created.Slug, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if post := dataAsPost(t, resp); post.Status != models.StatusArchived {
		t.Errorf("status = %q, want archived", post.Status)
	}

	w, resp = doRequest(t, router, http.MethodPatch, "/blog/archive/slug/missing-slug", nil)
	if w.Code != http.StatusNotFound || resp.Error != "BLOG_NOT_FOUND" {
		t.Errorf("missing slug: status = %d, error = %q", w.Code, resp.Error)
	}
}

func TestDeleteBlogPost(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	w, _ := doRequest(t, router, http.MethodDelete, "/blog/delete/"+created.BlogID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w, resp := doRequest(t, router, http.MethodGet, "/blog/get-by-id/"+created.BlogID, nil)
	if w.Code != http.StatusNotFound || resp.Error != "BLOG_NOT_FOUND" {
		t.Errorf("post still present after delete: status = %d", w.Code)
	}

	w, resp = doRequest(t, router, http.MethodDelete, "/blog/delete/"+created.BlogID, nil)
	if w.Code != http.StatusNotFound || resp.Error != "BLOG_NOT_FOUND" {
		t.Errorf("double delete: status = %d, error = %q", w.Code, resp.Error)
	}
}

func TestDeleteBlogPostBySlug(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())
	created := createPost(t, router, validPayload())

	w, _ := doRequest(t, router, http.MethodDelete, "/blog/delete/slug/"+created.Slug, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete by slug status = %d", w.Code)
	}

	w, _ = doRequest(t, router, http.MethodGet, "/blog/get/"+created.Slug, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("post still present after delete by slug")
	}
}

func TestListPagination(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())

	for i := 0; i < 12; i++ {
		payload := validPayload()
		payload["title"] = fmt.Sprintf("Post Number %d", i+1)
		createPost(t, router, payload)
	}

	w, resp := doRequest(t, router, http.MethodGet, "/blog/get-all?page=2&limit=5&sortOrder=asc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	items, ok := resp.Data.([]any)
	if !ok {
		t.Fatalf("data is %T, want list", resp.Data)
	}
	if len(items) != 5 {
		t.Errorf("page size = %d, want 5", len(items))
	}

	p := resp.Pagination
	if p == nil {
		t.Fatal("pagination envelope missing")
	}
	if p.TotalCount != 12 || p.TotalPages != 3 || p.Page != 2 {
		t.Errorf("pagination = %+v, want total 12, pages 3, page 2", p)
	}
	if !p.HasNextPage || !p.HasPrevPage {
		t.Errorf("hasNext=%v hasPrev=%v, want both true", p.HasNextPage, p.HasPrevPage)
	}

	// the ascending second page holds posts 6 through 10
	first := dataItemAsPost(t, items[0])
	if first.Title != "Post Number 6" {
		t.Errorf("first item on page 2 = %q, want Post Number 6", first.Title)
	}
	last := dataItemAsPost(t, items[4])
	if last.Title != "Post Number 10" {
		t.Errorf("last item on page 2 = %q, want Post Number 10", last.Title)
	}
}

func dataItemAsPost(t *testing.T, item any) models.BlogPost {
	t.Helper()
	raw, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("remarshaling item: %v", err)
	}
	var post models.BlogPost
	if err := json.Unmarshal(raw, &post); err != nil {
		t.Fatalf("unmarshaling item: %v", err)
	}
	return post
}

func TestListInvalidPagination(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())

	for _, query := range []string{"page=0", "page=abc", "limit=0", "limit=101"} {
		w, resp := doRequest(t, router, http.MethodGet, "/blog/get-all?"+query, nil)
		if w.Code != http.StatusBadRequest || resp.Error != "INVALID_PAGINATION" {
			t.Errorf("%s: status = %d, error = %q, want 400 INVALID_PAGINATION", query, w.Code, resp.Error)
		}
	}
}

func TestListFilters(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())

	events := validPayload()
	events["title"] = "Hackathon Recap"
	createPost(t, router, events)

	workshops := validPayload()
	workshops["title"] = "Intro to Git"
	workshops["category"] = "Workshops"
	createPost(t, router, workshops)

	featured := validPayload()
	featured["title"] = "Chapter Anniversary"
	featured["isFeatured"] = true
	featured["isPublished"] = true
	featured["status"] = "published"
	createPost(t, router, featured)

	w, resp := doRequest(t, router, http.MethodGet, "/blog/category/Workshops", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if items := resp.Data.([]any); len(items) != 1 {
		t.Errorf("category filter returned %d items, want 1", len(items))
	}

	_, resp = doRequest(t, router, http.MethodGet, "/blog/featured", nil)
	if items := resp.Data.([]any); len(items) != 1 {
		t.Errorf("featured returned %d items, want 1", len(items))
	}

	_, resp = doRequest(t, router, http.MethodGet, "/blog/get-all?search=anniversary", nil)
	if items := resp.Data.([]any); len(items) != 1 {
		t.Errorf("search returned %d items, want 1", len(items))
	}

	_, resp = doRequest(t, router, http.MethodGet, "/blog/get-all?status=draft", nil)
	if items := resp.Data.([]any); len(items) != 2 {
		t.Errorf("status filter returned %d items, want 2", len(items))
	}
}

func TestListByAuthor(t *testing.T) {
	router := newTestRouter(newFakeBlogStore(), newFakeProfileStore())

	mine := validPayload()
	mine["authorId"] = "me@mjcollege.ac.in"
	createPost(t, router, mine)

	theirs := validPayload()
	theirs["title"] = "Someone Else Writes"
	theirs["authorId"] = "them@mjcollege.ac.in"
	createPost(t, router, theirs)

	_, resp := doRequest(t, router, http.MethodGet, "/blog/get-by-author/me@mjcollege.ac.in", nil)
	if items := resp.Data.([]any); len(items) != 1 {
		t.Errorf("author filter returned %d items, want 1", len(items))
	}
}
