package api

import (
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mjcet-acm/site-backend/database"
	"github.com/mjcet-acm/site-backend/models"
	"gorm.io/gorm"
)

// fakeBlogStore is an in-memory BlogStore for handler tests.
type fakeBlogStore struct {
	nextID uint
	posts  []*models.BlogPost
}

func newFakeBlogStore() *fakeBlogStore {
	return &fakeBlogStore{}
}

func (s *fakeBlogStore) Create(post *models.BlogPost) error {
	for _, p := range s.posts {
		if p.Slug == post.Slug || p.BlogID == post.BlogID {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	post.ID = s.nextID
	post.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.nextID) * time.Minute)
	post.UpdatedAt = post.CreatedAt
	clone := *post
	s.posts = append(s.posts, &clone)
	return nil
}

func (s *fakeBlogStore) FindBySlug(slug string) (*models.BlogPost, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeBlogStore) FindByBlogID(blogID string) (*models.BlogPost, error) {
	for _, p := range s.posts {
		if p.BlogID == blogID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeBlogStore) SlugExists(slug string, excludeID uint) (bool, error) {
	for _, p := range s.posts {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func matchesSearch(p *models.BlogPost, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Content), term) ||
		strings.Contains(strings.ToLower(p.AuthorName), term) {
		return true
	}
	return p.Excerpt != nil && strings.Contains(strings.ToLower(*p.Excerpt), term)
}

func (s *fakeBlogStore) List(f database.BlogFilter) ([]models.BlogPost, int64, error) {
	var matched []*models.BlogPost
	for _, p := range s.posts {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.AuthorID != "" && (p.AuthorID == nil || *p.AuthorID != f.AuthorID) {
			continue
		}
		if f.Published != nil && p.IsPublished != *f.Published {
			continue
		}
		if f.Featured != nil && p.IsFeatured != *f.Featured {
			continue
		}
		if f.Approved != nil && p.IsApproved != *f.Approved {
			continue
		}
		if f.Search != "" && !matchesSearch(p, f.Search) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		if f.SortDesc {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]models.BlogPost, 0, end-start)
	for _, p := range matched[start:end] {
		page = append(page, *p)
	}
	return page, total, nil
}

func (s *fakeBlogStore) Save(post *models.BlogPost) error {
	for i, p := range s.posts {
		if p.ID == post.ID {
			if taken, _ := s.SlugExists(post.Slug, post.ID); taken {
				return gorm.ErrDuplicatedKey
			}
			post.UpdatedAt = time.Now().UTC()
			clone := *post
			clone.CreatedAt = p.CreatedAt
			s.posts[i] = &clone
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func clampAdd(current, delta int) int {
	if current+delta < 0 {
		return 0
	}
	return current + delta
}

func (s *fakeBlogStore) ApplyEngagement(blogID string, d database.EngagementDelta) error {
	for _, p := range s.posts {
		if p.BlogID == blogID {
			p.Upvotes = clampAdd(p.Upvotes, d.Upvotes)
			p.Downvotes = clampAdd(p.Downvotes, d.Downvotes)
			p.Shares = clampAdd(p.Shares, d.Shares)
			p.Comments = clampAdd(p.Comments, d.Comments)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeBlogStore) IncrementViews(blogID string) error {
	for _, p := range s.posts {
		if p.BlogID == blogID {
			p.Views++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeBlogStore) DeleteByID(id uint) error {
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeProfileStore is an in-memory ProfileStore for handler tests.
type fakeProfileStore struct {
	nextID   uint
	profiles []*models.UserProfile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{}
}

func (s *fakeProfileStore) Create(profile *models.UserProfile) error {
	for _, p := range s.profiles {
		if p.UUID == profile.UUID {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	profile.ID = s.nextID
	profile.CreatedAt = time.Now().UTC()
	profile.UpdatedAt = profile.CreatedAt
	clone := *profile
	s.profiles = append(s.profiles, &clone)
	return nil
}

func (s *fakeProfileStore) FindByUUID(id uuid.UUID) (*models.UserProfile, error) {
	for _, p := range s.profiles {
		if p.UUID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeProfileStore) FindAll() ([]models.UserProfile, error) {
	out := make([]models.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeProfileStore) UpdateFields(id uuid.UUID, fields map[string]any) (int64, error) {
	for _, p := range s.profiles {
		if p.UUID != id {
			continue
		}
		for name, value := range fields {
			switch name {
			case "email":
				p.Email = value.(string)
			case "full_name":
				p.FullName = value.(string)
			case "is_active":
				p.IsActive = value.(bool)
			case "last_login":
				t := value.(time.Time)
				p.LastLogin = &t
			case "acm_member_id":
				v := value.(string)
				p.AcmMemberID = &v
			case "member_type":
				p.MemberType = value.(string)
			case "role_type":
				v := value.(string)
				p.RoleType = &v
			}
		}
		p.UpdatedAt = time.Now().UTC()
		return 1, nil
	}
	return 0, nil
}

// newTestRouter mounts the real routes over in-memory stores, with
// authentication disabled.
func newTestRouter(blog BlogStore, profiles ProfileStore) *chi.Mux {
	r := chi.NewRouter()
	handlers := &routeHandlers{
		blogPostHandler: newBlogPostHandler(blog),
		profileHandler:  newProfileHandler(profiles, "mjcollege.ac.in"),
	}
	setupRoutes(r, handlers, newAuthMiddleware(""))
	return r
}
