package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// prettyJSON re-serializes raw with two-space indentation, keeping key order
// and writing numbers and strings the way JSON.stringify does.
func prettyJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var compact bytes.Buffer
	if err := writeJSONValue(dec, &compact); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return pretty.Bytes(), nil
}

func writeJSONValue(dec *json.Decoder, out *bytes.Buffer) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		return writeJSONContainer(dec, out, v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("number %s out of range", v)
		}
		out.WriteString(jsNumber(f))
	case string:
		return writeJSONString(out, v)
	case bool:
		if v {
			out.WriteString("true")
		} else {
			out.WriteString("false")
		}
	case nil:
		out.WriteString("null")
	}
	return nil
}

func writeJSONContainer(dec *json.Decoder, out *bytes.Buffer, open json.Delim) error {
	isObject := open == '{'
	out.WriteByte(byte(open))

	for i := 0; dec.More(); i++ {
		if i > 0 {
			out.WriteByte(',')
		}
		if isObject {
			key, err := dec.Token()
			if err != nil {
				return err
			}
			if err := writeJSONString(out, key.(string)); err != nil {
				return err
			}
			out.WriteByte(':')
		}
		if err := writeJSONValue(dec, out); err != nil {
			return err
		}
	}

	// closing delimiter
	closing, err := dec.Token()
	if err != nil {
		return err
	}
	out.WriteByte(byte(closing.(json.Delim)))
	return nil
}

func writeJSONString(out *bytes.Buffer, s string) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates with a newline
	out.Truncate(out.Len() - 1)
	return nil
}
