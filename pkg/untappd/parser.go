package untappd

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"utscraper/pkg/errors"
)

const (
	// itemSelector matches the gallery item anchors
	itemSelector = "a.photo-item"

	// photoIDAttr is the stable identifier attribute on each item
	photoIDAttr = "data-photo-id"

	// payloadSelector matches the per-item JSON container, whose element id
	// is prefixed with the photo id
	payloadSelector = `div[id^="photoJSON_"]`
)

// logoPathSegments mark brand and venue logo assets that appear in
// galleries but are not user photos.
var logoPathSegments = []string{"beer_logos", "brewery_logos"}

// ParseGallery scans a rendered gallery document and returns all items that
// yield a valid photo record, in document order. Items with a missing id
// attribute, an unparsable payload, a missing image URL, or a logo-class
// URL are skipped; one bad item never aborts the scan.
func ParseGallery(html string) ([]PhotoRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeExtraction, err, "failed to parse gallery document")
	}

	var records []PhotoRecord
	doc.Find(itemSelector).Each(func(_ int, item *goquery.Selection) {
		record, ok := parseItem(item)
		if !ok {
			return
		}
		records = append(records, record)
	})

	return records, nil
}

// parseItem extracts a single gallery item, reporting ok=false on any
// per-item failure.
func parseItem(item *goquery.Selection) (PhotoRecord, bool) {
	photoID, exists := item.Attr(photoIDAttr)
	if !exists || photoID == "" {
		return PhotoRecord{}, false
	}

	payloadText := item.Find(payloadSelector).First().Text()
	if strings.TrimSpace(payloadText) == "" {
		return PhotoRecord{}, false
	}

	var payload photoPayload
	if err := json.Unmarshal([]byte(payloadText), &payload); err != nil {
		return PhotoRecord{}, false
	}

	imageURL := NormalizeImageURL(payload.Photo.PhotoImgOG)
	if imageURL == "" || IsLogoAsset(imageURL) {
		return PhotoRecord{}, false
	}

	return PhotoRecord{ID: photoID, ImageURL: imageURL}, true
}

// NormalizeImageURL unescapes the JSON-escaped path separators the payload
// carries.
func NormalizeImageURL(raw string) string {
	return strings.ReplaceAll(raw, `\/`, "/")
}

// IsLogoAsset reports whether the URL points at a brand or venue logo
// rather than a user photo.
func IsLogoAsset(imageURL string) bool {
	for _, segment := range logoPathSegments {
		if strings.Contains(imageURL, segment) {
			return true
		}
	}
	return false
}
