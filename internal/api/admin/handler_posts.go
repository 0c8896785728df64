package admin

import (
	"net/http"
	"time"

	"finmate/database"
	"finmate/internal/domain/posts"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

var postPolicy = bluemonday.UGCPolicy()

type postRequest struct {
	Title          string `json:"title" binding:"required"`
	Slug           string `json:"slug"`
	Excerpt        string `json:"excerpt"`
	Content        string `json:"content" binding:"required"`
	Type           string `json:"type"`
	Tags           string `json:"tags"`
	ReadingMinutes int    `json:"readingMinutes"`
	IsPublished    bool   `json:"isPublished"`
}

func ListAllPosts(c *gin.Context) {
	var list []posts.Post
	if err := database.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	postType := req.Type
	if postType == "" {
		postType = posts.TypeBlog
	}
	if !posts.ValidType(postType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post type"})
		return
	}

	post := posts.Post{
		Title:          postPolicy.Sanitize(req.Title),
		Slug:           req.Slug,
		Excerpt:        postPolicy.Sanitize(req.Excerpt),
		Content:        postPolicy.Sanitize(req.Content),
		Type:           postType,
		Tags:           req.Tags,
		ReadingMinutes: req.ReadingMinutes,
		IsPublished:    req.IsPublished,
	}
	if post.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := posts.EnsureSlug(database.DB, &post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive slug"})
		return
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func UpdatePost(c *gin.Context) {
	var post posts.Post
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type != "" {
		if !posts.ValidType(req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post type"})
			return
		}
		post.Type = req.Type
	}

	wasPublished := post.IsPublished

	post.Title = postPolicy.Sanitize(req.Title)
	post.Excerpt = postPolicy.Sanitize(req.Excerpt)
	post.Content = postPolicy.Sanitize(req.Content)
	post.Tags = req.Tags
	post.ReadingMinutes = req.ReadingMinutes
	post.IsPublished = req.IsPublished
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	if post.IsPublished && !wasPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := database.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func DeletePost(c *gin.Context) {
	var post posts.Post
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
