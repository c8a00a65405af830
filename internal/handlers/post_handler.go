package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/imaging"
	"github.com/BruksfildServices01/barbemnt/internal/middleware"
	ucPost "github.com/BruksfildServices01/barbemnt/internal/usecase/post"
)

type PostHandler struct {
	upload   *ucPost.UploadImage
	create   *ucPost.CreatePost
	remove   *ucPost.DeletePost
	list     *ucPost.ListPosts
	maxBytes int64
}

func NewPostHandler(
	upload *ucPost.UploadImage,
	create *ucPost.CreatePost,
	remove *ucPost.DeletePost,
	list *ucPost.ListPosts,
	maxBytes int64,
) *PostHandler {
	return &PostHandler{
		upload:   upload,
		create:   create,
		remove:   remove,
		list:     list,
		maxBytes: maxBytes,
	}
}

// --------- Requests ---------

type CreatePostRequest struct {
	Type     string `json:"type" binding:"omitempty,oneof=portfolio announcement"`
	Title    string `json:"title" binding:"max=200"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
	Caption  string `json:"caption" binding:"max=2200"`
}

// --------- Handlers ---------

// Upload accepts a multipart "file" and returns the public URL of the stored WebP.
func (h *PostHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "No file provided.")
		return
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "File size must be less than 10MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Could not read the file.")
		return
	}
	defer f.Close()

	var r io.Reader = f
	if h.maxBytes > 0 {
		// one extra byte lets the processor see an oversized body
		r = io.LimitReader(f, h.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Could not read the file.")
		return
	}

	url, err := h.upload.Execute(c.Request.Context(), middleware.PrincipalFrom(c), middleware.TeamIDFrom(c), data)
	switch {
	case errors.Is(err, imaging.ErrEmpty):
		httperr.BadRequest(c, "empty_file", "The file is empty.")
	case errors.Is(err, imaging.ErrTooLarge):
		httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "File size must be less than 10MB.")
	case errors.Is(err, imaging.ErrUnsupportedType):
		httperr.Write(c, http.StatusUnsupportedMediaType, "unsupported_file_type", "Invalid file type. Only images are allowed.")
	case err != nil:
		writeBusinessError(c, err)
	default:
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	p, err := h.create.Execute(c.Request.Context(), middleware.PrincipalFrom(c), ucPost.CreatePostInput{
		TeamID:    middleware.TeamIDFrom(c),
		Type:      req.Type,
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Caption:   req.Caption,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PostHandler) ListTeam(c *gin.Context) {
	posts, err := h.list.ForTeam(c.Request.Context(), middleware.TeamIDFrom(c))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := h.remove.Execute(
		c.Request.Context(),
		middleware.PrincipalFrom(c),
		middleware.TeamIDFrom(c),
		id,
		c.ClientIP(),
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
