package syscall

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// Encoding names accepted by read and write.
const (
	EncodingUTF8   = "utf8"
	EncodingASCII  = "ascii"
	EncodingLatin1 = "latin1"
	EncodingBinary = "binary"
	EncodingBase64 = "base64"
	EncodingHex    = "hex"
	EncodingAuto   = "auto"
)

func normalizeEncoding(enc string) string {
	switch e := strings.ToLower(strings.TrimSpace(enc)); e {
	case "", "utf-8":
		return EncodingUTF8
	default:
		return e
	}
}

// decodeContent renders file bytes as a string in enc. For EncodingAuto it
// also returns the detected charset.
func decodeContent(data []byte, enc string) (string, string, error) {
	switch normalizeEncoding(enc) {
	case EncodingUTF8:
		return string(data), "", nil
	case EncodingASCII:
		out := make([]byte, len(data))
		for i, b := range data {
			out[i] = b & 0x7f
		}
		return string(out), "", nil
	case EncodingLatin1, EncodingBinary:
		return latin1String(data), "", nil
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(data), "", nil
	case EncodingHex:
		return hex.EncodeToString(data), "", nil
	case EncodingAuto:
		return detectAndDecode(data)
	default:
		return "", "", unknownEncoding(enc)
	}
}

// encodeContent turns request data into file bytes.
func encodeContent(s string, enc string) ([]byte, error) {
	switch normalizeEncoding(enc) {
	case EncodingUTF8, EncodingAuto:
		return []byte(s), nil
	case EncodingASCII, EncodingLatin1, EncodingBinary:
		out := make([]byte, 0, len(s))
		for _, r := range s {
			out = append(out, byte(r))
		}
		return out, nil
	case EncodingBase64:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, withCode(CodeInvalidData, fmt.Errorf("decode base64 data: %w", err))
		}
		return b, nil
	case EncodingHex:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, withCode(CodeInvalidData, fmt.Errorf("decode hex data: %w", err))
		}
		return b, nil
	default:
		return nil, unknownEncoding(enc)
	}
}

func unknownEncoding(enc string) error {
	return withCode(CodeUnknownEncoding, fmt.Errorf("unknown encoding: %s", enc))
}

func latin1String(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

// detectAndDecode guesses the charset of data and transcodes it to UTF-8.
// Valid UTF-8 is returned unchanged.
func detectAndDecode(data []byte) (string, string, error) {
	if len(data) == 0 || utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	detected := "utf-8"
	if best, err := chardet.NewTextDetector().DetectBest(data); err == nil && best != nil {
		detected = strings.ToLower(best.Charset)
	}

	reader, err := charset.NewReaderLabel(detected, bytes.NewReader(data))
	if err != nil {
		return latin1String(data), "iso-8859-1", nil
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", detected, fmt.Errorf("transcode %s: %w", detected, err)
	}
	return string(out), detected, nil
}
