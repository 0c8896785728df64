package posts

import (
	"net/http"

	"finmate/database"
	"finmate/internal/domain/posts"

	"github.com/gin-gonic/gin"
)

// GET /posts?type=blog|guide
func ListPosts(c *gin.Context) {
	q := database.DB.
		Where("is_published = ?", true).
		Order("published_at DESC")

	if t := c.Query("type"); t == posts.TypeBlog || t == posts.TypeGuide {
		q = q.Where("type = ?", t)
	}

	var list []posts.Post
	if err := q.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetPostBySlug(c *gin.Context) {
	var post posts.Post
	if err := database.DB.
		Where("slug = ? AND is_published = ?", c.Param("slug"), true).
		First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}
