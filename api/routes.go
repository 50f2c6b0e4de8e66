package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the blog and profile surfaces. Reads are public;
// every mutating route sits behind the auth middleware.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/blog", func(r chi.Router) {
		r.Get("/get-all", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/get/{slug}", handlers.blogPostHandler.getBlogPostBySlug())
		r.Get("/get-by-id/{blogId}", handlers.blogPostHandler.getBlogPostByID())
		r.Get("/get-by-author/{authorId}", handlers.blogPostHandler.getBlogPostsByAuthor())
		r.Get("/category/{category}", handlers.blogPostHandler.getBlogPostsByCategory())
		r.Get("/featured", handlers.blogPostHandler.getFeaturedBlogPosts())

		// view counting is open so the public site can report reads
		r.Patch("/update/views/{blogId}", handlers.blogPostHandler.updateViews())
		r.Patch("/update/engagement/{blogId}", handlers.blogPostHandler.updateEngagement())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/create-post", handlers.blogPostHandler.createBlogPost())
			r.Patch("/update/{blogId}", handlers.blogPostHandler.updateBlogPost())
			r.Patch("/toggle/publish/{blogId}", handlers.blogPostHandler.togglePublish())
			r.Delete("/delete/{blogId}", handlers.blogPostHandler.deleteBlogPost())
			r.Delete("/delete/slug/{slug}", handlers.blogPostHandler.deleteBlogPostBySlug())
			r.Patch("/archive/{blogId}", handlers.blogPostHandler.archiveBlogPost())
			r.Patch("/archive/slug/{slug}", handlers.blogPostHandler.archiveBlogPostBySlug())
			r.Patch("/restore/{blogId}", handlers.blogPostHandler.restoreBlogPost())
		})
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Post("/", handlers.profileHandler.createProfile())
		r.Get("/", handlers.profileHandler.getAllProfiles())
		r.Get("/{uuid}", handlers.profileHandler.getProfile())
		r.Patch("/{uuid}", handlers.profileHandler.updateProfile())
	})
}
