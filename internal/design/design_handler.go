package design

import (
	"errors"
	"net/http"
	"strconv"

	"swarachna-api/internal/middleware"
	"swarachna-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipart overhead on top of a single file
const maxUploadBody = MaxFileSize + 1<<20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("design.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("design.handler")
	}
	return &Handler{service: s, logger: l}
}

func (h *Handler) Draft(c *gin.Context) {
	res, err := h.service.Draft(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	res, err := h.service.Update(c.Request.Context(), c.GetString("session_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) AddFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.FromError(c, ErrFileTooLarge)
			return
		}
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "A file is required in the \"file\" field", err.Error())
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "FILE_ERROR", "Failed to open file", err.Error())
		return
	}
	defer f.Close()

	res, err := h.service.AddFile(c.Request.Context(), c.GetString("session_id"), FileUpload{
		Name: fh.Filename,
		Size: fh.Size,
		Body: f,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Debug("design file added",
		zap.String("session_id", c.GetString("session_id")),
		zap.String("filename", fh.Filename),
		zap.Int64("size", fh.Size),
	)
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) RemoveFile(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.FromError(c, ErrFileNotFound)
		return
	}

	res, err := h.service.RemoveFile(c.Request.Context(), c.GetString("session_id"), index)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Next(c *gin.Context) {
	res, err := h.service.Next(c.Request.Context(), c.GetString("session_id"), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Back(c *gin.Context) {
	res, err := h.service.Back(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) GoTo(c *gin.Context) {
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		response.FromError(c, ErrInvalidStep)
		return
	}

	res, err := h.service.GoTo(c.Request.Context(), c.GetString("session_id"), step)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Discard(c *gin.Context) {
	if err := h.service.Discard(c.Request.Context(), c.GetString("session_id")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
