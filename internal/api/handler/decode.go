package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
)

// maxLoginBody caps the login payload. Larger bodies are malformed input.
const maxLoginBody = 16 << 10

var (
	errNotJSON      = errors.New("content type must be application/json")
	errTrailingData = errors.New("unexpected data after JSON body")
)

// decodeJSON reads exactly one JSON value of at most limit bytes into dst.
// Anything else on the wire, including a second value, is an error.
func decodeJSON(c echo.Context, dst any, limit int64) error {
	req := c.Request()
	mediaType, _, err := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType))
	if err != nil || mediaType != echo.MIMEApplicationJSON {
		return errNotJSON
	}

	dec := json.NewDecoder(http.MaxBytesReader(c.Response(), req.Body, limit))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}
