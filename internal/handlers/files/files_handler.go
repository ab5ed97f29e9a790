// internal/handlers/files/files_handler.go
package files

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"voiceai-web/internal/domain/tts"
	"voiceai-web/internal/gateway"
	"voiceai-web/internal/middleware"
	"voiceai-web/internal/pkg/xerrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pageSize = 10

type FilesHandler struct {
	gw     *gateway.Client
	logger *zap.Logger
}

func NewFilesHandler(gw *gateway.Client, logger *zap.Logger) *FilesHandler {
	return &FilesHandler{gw: gw, logger: logger}
}

// List renders the user's generated files. The search box filters the
// current page by filename or voice name; paging is delegated to the API.
func (h *FilesHandler) List(c *gin.Context) {
	sid := middleware.SessionID(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	query := strings.TrimSpace(c.Query("q"))

	result, err := h.gw.VoiceFiles(c.Request.Context(), sid, page, pageSize)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.logger.Warn("list voice files failed", zap.Error(err))
		c.HTML(http.StatusOK, "files.html", gin.H{
			"Error": "Could not load your files. Please try again.",
			"Query": query,
		})
		return
	}

	files := result.VoiceFiles
	if query != "" {
		files = filterFiles(files, query)
	}

	c.HTML(http.StatusOK, "files.html", gin.H{
		"Files":      files,
		"Pagination": result.Pagination,
		"PrevPage":   result.Pagination.Current - 1,
		"NextPage":   result.Pagination.Current + 1,
		"Query":      query,
	})
}

// Delete removes one file and returns to the listing.
func (h *FilesHandler) Delete(c *gin.Context) {
	sid := middleware.SessionID(c)
	fileID := c.Param("id")

	if err := h.gw.DeleteVoiceFile(c.Request.Context(), sid, fileID); err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.logger.Warn("delete voice file failed",
			zap.String("file_id", fileID),
			zap.Error(err),
		)
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/files")
}

// Download resolves a short-lived URL for the file and sends the browser
// there.
func (h *FilesHandler) Download(c *gin.Context) {
	sid := middleware.SessionID(c)
	fileID := c.Param("id")

	url, err := h.gw.DownloadURL(c.Request.Context(), sid, fileID)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		h.logger.Warn("resolve download url failed",
			zap.String("file_id", fileID),
			zap.Error(err),
		)
		c.Redirect(http.StatusSeeOther, "/dashboard/files")
		return
	}
	c.Redirect(http.StatusSeeOther, url)
}

func filterFiles(in []tts.VoiceFile, query string) []tts.VoiceFile {
	q := strings.ToLower(query)
	out := make([]tts.VoiceFile, 0, len(in))
	for _, f := range in {
		if strings.Contains(strings.ToLower(f.Filename), q) ||
			strings.Contains(strings.ToLower(f.VoiceName), q) {
			out = append(out, f)
		}
	}
	return out
}
