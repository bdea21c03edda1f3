package gateway

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Canonical encoding names, matching the Node.js Buffer encodings callers send
const (
	EncUTF8      = "utf8"
	EncASCII     = "ascii"
	EncLatin1    = "latin1"
	EncBase64    = "base64"
	EncBase64URL = "base64url"
	EncHex       = "hex"
	EncUTF16LE   = "utf16le"
)

var encodingAliases = map[string]string{
	"utf8":      EncUTF8,
	"utf-8":     EncUTF8,
	"ascii":     EncASCII,
	"latin1":    EncLatin1,
	"binary":    EncLatin1,
	"base64":    EncBase64,
	"base64url": EncBase64URL,
	"hex":       EncHex,
	"utf16le":   EncUTF16LE,
	"utf-16le":  EncUTF16LE,
	"ucs2":      EncUTF16LE,
	"ucs-2":     EncUTF16LE,
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func normalizeEncoding(enc string) (string, error) {
	if enc == "" {
		return EncUTF8, nil
	}
	if canonical, ok := encodingAliases[strings.ToLower(enc)]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("unknown encoding: %s", enc)
}

// encodeString converts text into bytes using enc
func encodeString(s, enc string) ([]byte, error) {
	name, err := normalizeEncoding(enc)
	if err != nil {
		return nil, err
	}

	switch name {
	case EncASCII:
		out := make([]byte, 0, len(s))
		for _, r := range s {
			out = append(out, byte(r))
		}
		return out, nil
	case EncLatin1:
		return xencoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes([]byte(s))
	case EncBase64, EncBase64URL:
		return decodeBase64Lenient(s)
	case EncHex:
		return decodeHexPrefix(s), nil
	case EncUTF16LE:
		return utf16le.NewEncoder().Bytes([]byte(s))
	default:
		return []byte(s), nil
	}
}

// decodeBytes renders raw bytes as text using enc
func decodeBytes(b []byte, enc string) (string, error) {
	name, err := normalizeEncoding(enc)
	if err != nil {
		return "", err
	}

	switch name {
	case EncASCII:
		out := make([]byte, len(b))
		for i, c := range b {
			out[i] = c & 0x7f
		}
		return string(out), nil
	case EncLatin1:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		return string(decoded), err
	case EncBase64:
		return base64.StdEncoding.EncodeToString(b), nil
	case EncBase64URL:
		return base64.RawURLEncoding.EncodeToString(b), nil
	case EncHex:
		return hex.EncodeToString(b), nil
	case EncUTF16LE:
		decoded, err := utf16le.NewDecoder().Bytes(b)
		return string(decoded), err
	default:
		return string(b), nil
	}
}

// decodeBase64Lenient accepts standard and URL alphabets, with or without
// padding. Characters outside the alphabet are skipped and a dangling
// sixth bit group is dropped.
func decodeBase64Lenient(s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '-':
			return '+'
		case r == '_':
			return '/'
		case r == '+', r == '/',
			r >= 'A' && r <= 'Z',
			r >= 'a' && r <= 'z',
			r >= '0' && r <= '9':
			return r
		}
		return -1
	}, s)
	if len(cleaned)%4 == 1 {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return base64.RawStdEncoding.DecodeString(cleaned)
}

// decodeHexPrefix decodes hex pairs up to the first invalid one
func decodeHexPrefix(s string) []byte {
	out := make([]byte, 0, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		b, err := hex.DecodeString(s[i : i+2])
		if err != nil {
			break
		}
		out = append(out, b[0])
	}
	return out
}
