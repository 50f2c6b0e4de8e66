package database

import (
	"gorm.io/gorm"
)

type Database struct {
	blogPostRepo    *BlogPostRepo
	userProfileRepo *UserProfileRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		blogPostRepo:    NewBlogPostRepo(db),
		userProfileRepo: NewUserProfileRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) UserProfileRepo() *UserProfileRepo {
	return d.userProfileRepo
}
