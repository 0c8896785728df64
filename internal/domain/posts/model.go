package posts

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

const (
	TypeBlog  = "blog"
	TypeGuide = "guide"
)

type Post struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Slug           string `gorm:"not null;uniqueIndex:idx_posts_slug" json:"slug"`
	Title          string `gorm:"not null" json:"title"`
	Excerpt        string `json:"excerpt"`
	Content        string `gorm:"type:text" json:"content"` // paragraphs separated by \n\n
	Type           string `gorm:"type:varchar(10);not null;default:'blog'" json:"type"`
	Tags           string `json:"tags"` // comma separated
	ReadingMinutes int    `json:"readingMinutes,omitempty"`
	IsPublished    bool   `gorm:"index" json:"isPublished"`
	PublishedAt    *time.Time
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ValidType(t string) bool {
	return t == TypeBlog || t == TypeGuide
}

// EnsureSlug fills in a unique slug derived from the title. Must run before
// the post is created; appends -2, -3, ... on collisions.
func EnsureSlug(db *gorm.DB, post *Post) error {
	if post.Slug != "" {
		return nil
	}
	base := MakeSlug(post.Title)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := db.Model(&Post{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			post.Slug = candidate
			return nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}
