package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Content type markers, matched by substring
var binaryContentTypes = []string{
	"application/octet-stream",
	"image/",
	"video/",
	"audio/",
	"application/pdf",
}

const (
	contentTypeText = "text/plain"
	contentTypeJSON = "application/json"
)

// structuredBody is the JSON envelope used when no path query is given
type structuredBody struct {
	Path     string          `json:"path"`
	Data     json.RawMessage `json:"data"`
	Type     string          `json:"type"`
	Encoding string          `json:"encoding"`
}

// DecodeWrite turns a write or append request into a WriteSpec.
// The returned Path is the caller's unresolved path.
func DecodeWrite(contentType string, body []byte, queryPath string) (*WriteSpec, error) {
	if len(body) == 0 {
		return nil, legacyBadRequest("No data provided")
	}

	var spec *WriteSpec
	switch {
	case containsAny(contentType, binaryContentTypes):
		spec = &WriteSpec{Path: queryPath, Data: body, Kind: KindBinary}
	case strings.Contains(contentType, contentTypeText):
		spec = &WriteSpec{Path: queryPath, Data: body, Kind: KindText}
	case strings.Contains(contentType, contentTypeJSON) && queryPath != "":
		spec = &WriteSpec{Path: queryPath, Data: body, Kind: KindJSON}
	case strings.Contains(contentType, contentTypeJSON):
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, legacyBadRequest("No data provided")
		}
		structured, err := decodeStructured(body)
		if err != nil {
			return nil, err
		}
		spec = structured
	default:
		spec = &WriteSpec{Path: queryPath, Data: body, Kind: KindUnknown}
	}

	if spec.Path == "" {
		return nil, badRequest("Missing required parameter: path")
	}
	if len(spec.Data) == 0 {
		return nil, legacyBadRequest("Empty content")
	}
	return spec, nil
}

func decodeStructured(body []byte) (*WriteSpec, error) {
	var req structuredBody
	if err := sonic.ConfigStd.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if req.Path == "" {
		return nil, badRequest("Missing required field: path")
	}
	if isNull(req.Data) {
		return nil, badRequest("Missing required field: data")
	}

	kind := req.Type
	if kind == "" {
		kind = KindText
	}

	var (
		data []byte
		err  error
	)
	switch kind {
	case "json":
		var pretty []byte
		pretty, err = prettyJSON(req.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid JSON data: %w", err)
		}
		data, err = encodeString(string(pretty), req.Encoding)
	case "buffer":
		data, err = bufferFrom(req.Data)
	default:
		data, err = encodeString(jsString(req.Data), req.Encoding)
	}
	if err != nil {
		return nil, err
	}

	return &WriteSpec{Path: req.Path, Data: data, Kind: kind}, nil
}

// bufferFrom accepts a byte array, a base64 string, or a Buffer JSON object
func bufferFrom(raw json.RawMessage) ([]byte, error) {
	var value interface{}
	if err := sonic.ConfigStd.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("invalid buffer data: %w", err)
	}

	switch v := value.(type) {
	case string:
		return decodeBase64Lenient(v)
	case []interface{}:
		return bytesFromArray(v), nil
	case map[string]interface{}:
		if v["type"] == "Buffer" {
			if arr, ok := v["data"].([]interface{}); ok {
				return bytesFromArray(arr), nil
			}
		}
	}
	return nil, fmt.Errorf("buffer data must be a byte array or base64 string")
}

// bytesFromArray truncates each element to 8 bits; non-numbers become zero
func bytesFromArray(arr []interface{}) []byte {
	out := make([]byte, len(arr))
	for i, el := range arr {
		if f, ok := el.(float64); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
			out[i] = byte(int64(f))
		}
	}
	return out
}

// jsString renders a JSON value the way JavaScript's String() would
func jsString(raw json.RawMessage) string {
	var value interface{}
	if err := sonic.ConfigStd.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	return jsValueString(value)
}

func jsValueString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return jsNumber(v)
	case []interface{}:
		parts := make([]string, len(v))
		for i, el := range v {
			if el != nil {
				parts[i] = jsValueString(el)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func jsNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs < 1e-6 || abs >= 1e21 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		return strings.NewReplacer("e-0", "e-", "e+0", "e+").Replace(s)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
