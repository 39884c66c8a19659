package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"silverback/metrics"
	"silverback/models"
	"silverback/service"
	"silverback/storage"
)

// Handler exposes the tweet lifecycle over HTTP. It owns nothing but the
// service and the media store; all state lives behind them.
type Handler struct {
	tweets  *service.TweetService
	uploads *storage.LocalStore
}

func NewHandler(tweets *service.TweetService, uploads *storage.LocalStore) *Handler {
	return &Handler{tweets: tweets, uploads: uploads}
}

// CreateTweetRequest is the canonical JSON create payload.
type CreateTweetRequest struct {
	Username string `json:"username" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// UpdateTweetRequest is the canonical update payload.
type UpdateTweetRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateTweet accepts either a JSON body or a multipart form with an
// optional "image" file. The stored file's path is recorded on the tweet;
// a JSON create always has a null image.
func (h *Handler) CreateTweet(c *gin.Context) {
	var username, content string
	var imagePath *string

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		username = c.PostForm("username")
		content = c.PostForm("content")

		file, err := c.FormFile("image")
		if err == nil {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image upload"})
				return
			}
			defer src.Close()

			path, err := h.uploads.Save(file.Filename, src)
			if err != nil {
				log.Printf("CreateTweet image save error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			imagePath = &path
		}
	} else {
		var req CreateTweetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		username = req.Username
		content = req.Content
	}

	tweet, err := h.tweets.Create(c.Request.Context(), username, content, imagePath)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.TweetsCreated.Inc()
	c.JSON(http.StatusCreated, tweet)
}

// ListTweets returns every tweet, newest first.
func (h *Handler) ListTweets(c *gin.Context) {
	tweets, err := h.tweets.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tweets)
}

func (h *Handler) UpdateTweet(c *gin.Context) {
	id, ok := tweetID(c)
	if !ok {
		return
	}

	var req UpdateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tweet, err := h.tweets.UpdateContent(c.Request.Context(), id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tweet)
}

func (h *Handler) DeleteTweet(c *gin.Context) {
	id, ok := tweetID(c)
	if !ok {
		return
	}

	if err := h.tweets.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	metrics.TweetsDeleted.Inc()
	c.JSON(http.StatusOK, gin.H{"msg": fmt.Sprintf("Tweet with id: %s was deleted!", id.Hex())})
}

func (h *Handler) LikeTweet(c *gin.Context) {
	id, ok := tweetID(c)
	if !ok {
		return
	}

	tweet, err := h.tweets.Like(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.Likes.Inc()
	c.JSON(http.StatusOK, tweet)
}

func (h *Handler) RetweetTweet(c *gin.Context) {
	id, ok := tweetID(c)
	if !ok {
		return
	}

	tweet, err := h.tweets.Retweet(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.Retweets.Inc()
	c.JSON(http.StatusOK, tweet)
}

// tweetID parses the :id route param. A malformed id is a 400; only a
// well-formed id that matches nothing becomes a 404 downstream.
func tweetID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tweet ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError maps service errors onto the error taxonomy: NotFound 404,
// validation 400, anything else a logged 500 with the underlying message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrTweetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Tweet not found"})
	case errors.Is(err, service.ErrEmptyContent), errors.Is(err, service.ErrEmptyUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("storage error: %v", err)
		metrics.StorageErrors.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
