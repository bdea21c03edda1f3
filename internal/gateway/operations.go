package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/fsgateway/internal/fsys"
)

const (
	infoMessage    = "Sandboxed filesystem API"
	encodingBuffer = "buffer"
	copyFileExcl   = 1 // COPYFILE_EXCL
)

type pathBody struct {
	Path string `json:"path"`
}

type copyFileBody struct {
	Src   string `json:"src"`
	Dest  string `json:"dest"`
	Flags int    `json:"flags"`
}

type mkdirBody struct {
	Path      string `json:"path"`
	Recursive *bool  `json:"recursive"`
}

type rmdirBody struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

type rmBody struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
	Force     bool   `json:"force"`
}

type renameBody struct {
	OldPath string `json:"oldPath"`
	NewPath string `json:"newPath"`
}

func (g *Gateway) info(ctx context.Context, req *Request) (interface{}, error) {
	return map[string]interface{}{
		"message": infoMessage,
		"root":    g.Root(),
	}, nil
}

func (g *Gateway) methods(ctx context.Context, req *Request) (interface{}, error) {
	return map[string]interface{}{"methods": Methods()}, nil
}

func (g *Gateway) readFile(ctx context.Context, req *Request) (interface{}, error) {
	path, err := requiredQuery(req, "path")
	if err != nil {
		return nil, err
	}
	encoding := req.Query["encoding"]
	if encoding != encodingBuffer {
		if _, err := normalizeEncoding(encoding); err != nil {
			return nil, err
		}
	}

	target, err := g.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := g.fs.ReadFile(target)
	if err != nil {
		return nil, err
	}

	if encoding == encodingBuffer {
		return map[string]interface{}{"data": NewBuffer(data)}, nil
	}
	text, err := decodeBytes(data, encoding)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"data": text}, nil
}

func (g *Gateway) readdir(ctx context.Context, req *Request) (interface{}, error) {
	path := req.Query["path"]
	if path == "" {
		path = "."
	}
	withTypes := queryBool(req, "withFileTypes")

	target, err := g.resolve(path)
	if err != nil {
		return nil, err
	}
	infos, err := g.fs.ReadDir(target)
	if err != nil {
		return nil, err
	}

	if withTypes {
		entries := make([]DirEntry, 0, len(infos))
		for _, fi := range infos {
			entries = append(entries, DirEntry{
				Name:           fi.Name(),
				IsFile:         fi.Mode().IsRegular(),
				IsDirectory:    fi.IsDir(),
				IsSymbolicLink: fi.Mode()&fs.ModeSymlink != 0,
			})
		}
		return map[string]interface{}{"entries": entries}, nil
	}

	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		names = append(names, fi.Name())
	}
	return map[string]interface{}{"entries": names}, nil
}

func (g *Gateway) stat(ctx context.Context, req *Request) (interface{}, error) {
	return g.statWith(req, g.fs.Stat)
}

func (g *Gateway) lstat(ctx context.Context, req *Request) (interface{}, error) {
	return g.statWith(req, g.fs.Lstat)
}

func (g *Gateway) statWith(req *Request, statFn func(string) (fs.FileInfo, error)) (interface{}, error) {
	path, err := requiredQuery(req, "path")
	if err != nil {
		return nil, err
	}
	target, err := g.resolve(path)
	if err != nil {
		return nil, err
	}
	fi, err := statFn(target)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"stats": NewStatResult(fi)}, nil
}

// NewStatResult projects file info onto the fields the gateway reports
func NewStatResult(fi fs.FileInfo) StatResult {
	times := fsys.Times(fi)
	return StatResult{
		IsFile:         fi.Mode().IsRegular(),
		IsDirectory:    fi.IsDir(),
		IsSymbolicLink: fi.Mode()&fs.ModeSymlink != 0,
		Size:           fi.Size(),
		Mode:           fsys.Mode(fi),
		Mtime:          times.Modify,
		Atime:          times.Access,
		Ctime:          times.Change,
		Birthtime:      times.Birth,
	}
}

func (g *Gateway) realpath(ctx context.Context, req *Request) (interface{}, error) {
	path, err := requiredQuery(req, "path")
	if err != nil {
		return nil, err
	}
	target, err := g.resolve(path)
	if err != nil {
		return nil, err
	}
	canonical, err := g.fs.Realpath(target)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"path": canonical}, nil
}

func (g *Gateway) readlink(ctx context.Context, req *Request) (interface{}, error) {
	path, err := requiredQuery(req, "path")
	if err != nil {
		return nil, err
	}
	target, err := g.resolve(path)
	if err != nil {
		return nil, err
	}
	link, err := g.fs.Readlink(target)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"target": link}, nil
}

func (g *Gateway) writeFile(ctx context.Context, req *Request) (interface{}, error) {
	return g.writeWith(req, g.fs.WriteFile)
}

func (g *Gateway) appendFile(ctx context.Context, req *Request) (interface{}, error) {
	return g.writeWith(req, g.fs.AppendFile)
}

func (g *Gateway) writeWith(req *Request, writeFn func(string, []byte) error) (interface{}, error) {
	spec, err := DecodeWrite(req.ContentType, req.Body, req.Query["path"])
	if err != nil {
		return nil, err
	}
	target, err := g.resolve(spec.Path)
	if err != nil {
		return nil, err
	}
	if err := writeFn(target, spec.Data); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"success": true,
		"path":    spec.Path,
		"type":    spec.Kind,
		"size":    len(spec.Data),
	}, nil
}

func (g *Gateway) copyFile(ctx context.Context, req *Request) (interface{}, error) {
	var body copyFileBody
	if err := parseBody(req, &body); err != nil {
		return nil, err
	}
	if err := requireFields(map[string]string{"src": body.Src, "dest": body.Dest}, "src", "dest"); err != nil {
		return nil, err
	}
	paths, err := g.resolveAll(body.Src, body.Dest)
	if err != nil {
		return nil, err
	}
	if err := g.fs.CopyFile(paths[0], paths[1], body.Flags&copyFileExcl != 0); err != nil {
		return nil, err
	}
	return success(), nil
}

func (g *Gateway) mkdir(ctx context.Context, req *Request) (interface{}, error) {
	var body mkdirBody
	if err := parseBody(req, &body); err != nil {
		return nil, err
	}
	if err := requireFields(map[string]string{"path": body.Path}, "path"); err != nil {
		return nil, err
	}
	recursive := true
	if body.Recursive != nil {
		recursive = *body.Recursive
	}
	target, err := g.resolve(body.Path)
	if err != nil {
		return nil, err
	}
	if err := g.fs.Mkdir(target, recursive); err != nil {
		return nil, err
	}
	return success(), nil
}

func (g *Gateway) rmdir(ctx context.Context, req *Request) (interface{}, error) {
	var body rmdirBody
	if err := parseBody(req, &body); err != nil {
		return nil, err
	}
	if err := requireFields(map[string]string{"path": body.Path}, "path"); err != nil {
		return nil, err
	}
	target, err := g.resolve(body.Path)
	if err != nil {
		return nil, err
	}
	if err := g.fs.Rmdir(target, body.Recursive); err != nil {
		return nil, err
	}
	return success(), nil
}

func (g *Gateway) rm(ctx context.Context, req *Request) (interface{}, error) {
	var body rmBody
	if err := parseBody(req, &body); err != nil {
		return nil, err
	}
	if err := requireFields(map[string]string{"path": body.Path}, "path"); err != nil {
		return nil, err
	}
	target, err := g.resolve(body.Path)
	if err != nil {
		return nil, err
	}
	if err := g.fs.Rm(target, body.Recursive, body.Force); err != nil {
		return nil, err
	}
	return success(), nil
}

func (g *Gateway) rename(ctx context.Context, req *Request) (interface{}, error) {
	var body renameBody
	if err := parseBody(req, &body); err != nil {
		return nil, err
	}
	fields := map[string]string{"oldPath": body.OldPath, "newPath": body.NewPath}
	if err := requireFields(fields, "oldPath", "newPath"); err != nil {
		return nil, err
	}
	paths, err := g.resolveAll(body.OldPath, body.NewPath)
	if err != nil {
		return nil, err
	}
	if err := g.fs.Rename(paths[0], paths[1]); err != nil {
		return nil, err
	}
	return success(), nil
}

func (g *Gateway) unlink(ctx context.Context, req *Request) (interface{}, error) {
	var body pathBody
	if err := parseBody(req, &body); err != nil {
		return nil, err
	}
	if err := requireFields(map[string]string{"path": body.Path}, "path"); err != nil {
		return nil, err
	}
	target, err := g.resolve(body.Path)
	if err != nil {
		return nil, err
	}
	if err := g.fs.Unlink(target); err != nil {
		return nil, err
	}
	return success(), nil
}

func success() map[string]interface{} {
	return map[string]interface{}{"success": true}
}

// parseBody decodes a JSON request body into v.
// An empty body is a caller error; malformed JSON is not.
func parseBody(req *Request, v interface{}) error {
	if len(bytes.TrimSpace(req.Body)) == 0 {
		return badRequest("Request body is required")
	}
	if err := sonic.ConfigStd.Unmarshal(req.Body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func requireFields(values map[string]string, names ...string) error {
	for _, name := range names {
		if values[name] == "" {
			return badRequest("Missing required field: " + name)
		}
	}
	return nil
}

func requiredQuery(req *Request, name string) (string, error) {
	v := req.Query[name]
	if v == "" {
		return "", badRequest("Missing required parameter: " + name)
	}
	return v, nil
}

func queryBool(req *Request, name string) bool {
	switch req.Query[name] {
	case "true", "1":
		return true
	}
	return false
}
