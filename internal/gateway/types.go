package gateway

import (
	"time"
)

// Request is a decoded HTTP request addressed to the gateway
type Request struct {
	Method      string
	Route       string            // path after the API prefix, without query string
	Query       map[string]string // last value wins for repeated keys
	ContentType string
	Body        []byte
}

// Response is what the gateway answers; always rendered as JSON
type Response struct {
	Status int
	Body   interface{}
}

// WriteSpec is a decoded write or append request
type WriteSpec struct {
	Path string
	Data []byte
	Kind string
}

// Write classification tags
const (
	KindText    = "text"
	KindJSON    = "json"
	KindBinary  = "binary"
	KindUnknown = "unknown"
)

// StatResult is the projection of file metadata returned by stat and lstat
type StatResult struct {
	IsFile         bool      `json:"isFile"`
	IsDirectory    bool      `json:"isDirectory"`
	IsSymbolicLink bool      `json:"isSymbolicLink"`
	Size           int64     `json:"size"`
	Mode           uint32    `json:"mode"`
	Mtime          time.Time `json:"mtime"`
	Atime          time.Time `json:"atime"`
	Ctime          time.Time `json:"ctime"`
	Birthtime      time.Time `json:"birthtime"`
}

// DirEntry is a typed directory listing entry
type DirEntry struct {
	Name           string `json:"name"`
	IsFile         bool   `json:"isFile"`
	IsDirectory    bool   `json:"isDirectory"`
	IsSymbolicLink bool   `json:"isSymbolicLink"`
}

// Buffer mirrors the JSON form of a Node.js Buffer
type Buffer struct {
	Type string `json:"type"`
	Data []int  `json:"data"`
}

// NewBuffer wraps raw bytes in the Buffer JSON form
func NewBuffer(b []byte) Buffer {
	data := make([]int, len(b))
	for i, v := range b {
		data[i] = int(v)
	}
	return Buffer{Type: "Buffer", Data: data}
}

// Bytes returns the buffer contents
func (b Buffer) Bytes() []byte {
	out := make([]byte, len(b.Data))
	for i, v := range b.Data {
		out[i] = byte(v)
	}
	return out
}
