package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsgateway/internal/fsys"
	"github.com/GriffinCanCode/fsgateway/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fsgateway/internal/sandbox"
	"github.com/GriffinCanCode/fsgateway/internal/shared/id"
)

// Config holds gateway construction parameters
type Config struct {
	Root string // confinement directory; created if absent
}

// Gateway dispatches requests to confined filesystem operations
type Gateway struct {
	resolver *sandbox.Resolver
	fs       fsys.FS
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

type operation func(ctx context.Context, req *Request) (interface{}, error)

// New creates a gateway rooted at cfg.Root, creating the directory if needed
func New(cfg Config, filesystem fsys.FS, logger *zap.Logger) (*Gateway, error) {
	if filesystem == nil {
		return nil, errors.New("filesystem is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	resolver, err := sandbox.NewResolver(cfg.Root)
	if err != nil {
		return nil, err
	}
	if err := filesystem.Mkdir(resolver.Root(), true); err != nil {
		return nil, fmt.Errorf("failed to create sandbox root: %w", err)
	}

	return &Gateway{
		resolver: resolver,
		fs:       filesystem,
		logger:   logger,
	}, nil
}

// WithMetrics attaches a metrics collector
func (g *Gateway) WithMetrics(metrics *monitoring.Metrics) *Gateway {
	g.metrics = metrics
	return g
}

// Root returns the absolute confinement root
func (g *Gateway) Root() string {
	return g.resolver.Root()
}

// Dispatch runs the operation addressed by req and never returns nil.
// Failures of any kind are rendered as error envelopes.
func (g *Gateway) Dispatch(ctx context.Context, req *Request) (resp *Response) {
	op, ok := Lookup(req.Method, req.Route)
	if !ok {
		g.logger.Debug("Route not found",
			zap.String("method", req.Method),
			zap.String("route", req.Route),
		)
		return notFoundResponse()
	}

	logger := g.logger.With(zap.String("op", string(op)))
	if rid := id.RequestIDFromContext(ctx); rid != "" {
		logger = logger.With(zap.String("request_id", rid))
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			resp = errorResponse(fmt.Errorf("%s failed: %v", op, r))
			logger.Error("Operation panicked", zap.Any("panic", r))
		}
		g.observe(op, resp, time.Since(start))
	}()

	handler := g.handler(op)
	result, err := handler(ctx, req)
	if err != nil {
		resp = errorResponse(err)
		logger.Warn("Operation failed",
			zap.Int("status", resp.Status),
			zap.Error(err),
		)
		return resp
	}

	logger.Debug("Operation completed")
	return &Response{Status: http.StatusOK, Body: result}
}

func (g *Gateway) handler(op Op) operation {
	switch op {
	case OpInfo:
		return g.info
	case OpMethods:
		return g.methods
	case OpReadFile:
		return g.readFile
	case OpReaddir:
		return g.readdir
	case OpStat:
		return g.stat
	case OpLstat:
		return g.lstat
	case OpRealpath:
		return g.realpath
	case OpReadlink:
		return g.readlink
	case OpWriteFile:
		return g.writeFile
	case OpAppendFile:
		return g.appendFile
	case OpCopyFile:
		return g.copyFile
	case OpMkdir:
		return g.mkdir
	case OpRmdir:
		return g.rmdir
	case OpRm:
		return g.rm
	case OpRename:
		return g.rename
	case OpUnlink:
		return g.unlink
	}
	return nil
}

// resolve confines a caller path, counting rejections
func (g *Gateway) resolve(candidate string) (string, error) {
	p, err := g.resolver.Resolve(candidate)
	if err != nil && g.metrics != nil {
		g.metrics.RecordRejectedPath()
	}
	return p, err
}

// resolveAll confines every path, failing if any one escapes
func (g *Gateway) resolveAll(candidates ...string) ([]string, error) {
	paths, err := g.resolver.ResolveAll(candidates...)
	if err != nil && g.metrics != nil {
		g.metrics.RecordRejectedPath()
	}
	return paths, err
}

func (g *Gateway) observe(op Op, resp *Response, d time.Duration) {
	if g.metrics == nil || resp == nil {
		return
	}
	outcome := "success"
	switch {
	case resp.Status >= http.StatusInternalServerError:
		outcome = "error"
	case resp.Status >= http.StatusBadRequest:
		outcome = "rejected"
	}
	g.metrics.RecordOperation(string(op), outcome, d)
}
