package server

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsgateway/internal/sandbox"
)

const indexFile = "index.html"

var errNoStaticDir = errors.New("static directory does not exist")

// staticHandler serves files beneath a directory for paths outside the API
type staticHandler struct {
	resolver *sandbox.Resolver
	files    afero.Fs
	logger   *zap.Logger
}

func newStaticHandler(dir string, logger *zap.Logger) (*staticHandler, error) {
	resolver, err := sandbox.NewResolver(dir)
	if err != nil {
		return nil, err
	}
	files := afero.NewReadOnlyFs(afero.NewOsFs())
	if ok, _ := afero.DirExists(files, resolver.Root()); !ok {
		return nil, fmt.Errorf("%w: %s", errNoStaticDir, resolver.Root())
	}
	return &staticHandler{
		resolver: resolver,
		files:    files,
		logger:   logger,
	}, nil
}

func (h *staticHandler) serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		notFound(c)
		return
	}

	target, err := h.resolver.Resolve(c.Request.URL.Path)
	if err != nil {
		h.logger.Warn("Static path rejected", zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	fi, err := h.files.Stat(target)
	if err == nil && fi.IsDir() {
		target = filepath.Join(target, indexFile)
		fi, err = h.files.Stat(target)
	}
	if err != nil || fi.IsDir() {
		notFound(c)
		return
	}

	data, err := afero.ReadFile(h.files, target)
	if err != nil {
		h.logger.Error("Failed to read static file", zap.String("path", target), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	c.Data(http.StatusOK, contentType(target, data), data)
}

// contentType prefers the extension, falling back to content sniffing
func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return mimetype.Detect(data).String()
}
