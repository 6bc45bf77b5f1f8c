package dart

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
)

var zipMagic = []byte("PK\x03\x04")

// statusDocument is what corpCode.xml returns instead of a zip on failure
type statusDocument struct {
	XMLName xml.Name `xml:"result"`
	Status  string   `xml:"status"`
	Message string   `xml:"message"`
}

// DownloadCorpCodes fetches the zipped corp code catalog (corpCode.xml).
// ⭐ SSOT: 고유번호 카탈로그 다운로드는 이 함수에서만
func (c *Client) DownloadCorpCodes(ctx context.Context) ([]byte, error) {
	var archive []byte

	err := c.withRetry(ctx, "corpCode.xml", func() error {
		body, err := c.fetch(ctx, "corpCode.xml", url.Values{})
		if err != nil {
			return err
		}
		if !bytes.HasPrefix(body, zipMagic) {
			return decodeStatusDocument(body)
		}
		archive = body
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.WithField("bytes", len(archive)).Info("Downloaded DART corp code catalog")
	return archive, nil
}

// decodeStatusDocument turns a non-zip corpCode.xml body into an error
func decodeStatusDocument(body []byte) error {
	var doc statusDocument
	if err := xml.Unmarshal(body, &doc); err != nil || doc.Status == "" {
		return fmt.Errorf("%w: corpCode.xml returned %d bytes that are neither zip nor status", ErrUnexpectedPayload, len(body))
	}
	if doc.Status == StatusOK {
		return fmt.Errorf("%w: corpCode.xml returned status %s without an archive", ErrUnexpectedPayload, doc.Status)
	}
	return &APIError{Status: doc.Status, Message: doc.Message}
}
