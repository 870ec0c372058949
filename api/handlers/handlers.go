package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-api/api/middleware"
	"blog-api/dto"
	"blog-api/logger"
	"blog-api/repositories"
	"blog-api/services"
)

const msgInvalidBody = "invalid request body"

// ListPostsHandler godoc
// @Summary      List posts
// @Description  List every stored post, newest first
// @Tags         posts
// @Produce      json
// @Success      200  {array}   dto.PostDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts [get]
func ListPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetPostHandler godoc
// @Summary      Get post by id
// @Description  Get a single post by ObjectID
// @Tags         posts
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [get]
func GetPostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// CreatePostHandler godoc
// @Summary      Create post
// @Description  Create a post. title, author.firstName, author.lastName and content are required
// @Tags         posts
// @Accept       json
// @Param        post  body  dto.CreatePostRequest  true  "New post"
// @Produce      json
// @Success      201  {object}  dto.PostDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts [post]
func CreatePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		post, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// UpdatePostHandler godoc
// @Summary      Update post
// @Description  Replace the supplied fields of a post. The path id is authoritative
// @Tags         posts
// @Accept       json
// @Param        id    path  string                 true  "ObjectID"
// @Param        post  body  dto.UpdatePostRequest  true  "Fields to replace"
// @Success      204  {string}  string  "no content"
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [put]
func UpdatePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		if err := svc.Update(c.Request.Context(), c.Param("id"), req); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// DeletePostHandler godoc
// @Summary      Delete post
// @Description  Delete a post by ObjectID
// @Tags         posts
// @Param        id   path   string  true  "ObjectID"
// @Success      204  {string}  string  "no content"
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [delete]
func DeletePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// respondBindError answers a malformed or incomplete body with a fixed message.
// The decoder/validator detail only goes to the log.
func respondBindError(c *gin.Context, err error) {
	logger.WarnWithFields("invalid request body", logger.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": middleware.RequestIDFromContext(c.Request.Context()),
		"error":      err.Error(),
	})
	c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Message: msgInvalidBody})
}

// respondError maps the error taxonomy onto a status code and a {message} body.
// Storage failures are logged with their cause; the client only sees a generic message.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Message: "post not found"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Message: ve.Error()})
	default:
		_ = c.Error(err)
		logger.ErrorWithFields("request failed", logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": middleware.RequestIDFromContext(c.Request.Context()),
			"error":      err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Message: "internal server error"})
	}
}
