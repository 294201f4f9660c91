package untappd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func galleryItem(id, payload string) string {
	return fmt.Sprintf(
		`<a class="photo-item" data-photo-id="%s" href="/photos/%s">
			<div id="photoJSON_%s" style="display:none">%s</div>
			<img src="/thumbs/%s.jpg">
		</a>`, id, id, id, payload, id)
}

func galleryPage(items ...string) string {
	page := `<html><body><div class="photo-grid">`
	for _, item := range items {
		page += item
	}
	return page + `</div></body></html>`
}

func payloadFor(url string) string {
	return fmt.Sprintf(`{"photo": {"photo_img_og": "%s"}}`, url)
}

func TestParseGallery(t *testing.T) {
	html := galleryPage(
		galleryItem("101", payloadFor(`https:\/\/utfb.s3.amazonaws.com\/photos\/101_og.jpg`)),
		galleryItem("102", payloadFor(`https:\/\/utfb.s3.amazonaws.com\/photos\/102_og.jpg`)),
	)

	records, err := ParseGallery(html)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "101", records[0].ID)
	assert.Equal(t, "https://utfb.s3.amazonaws.com/photos/101_og.jpg", records[0].ImageURL)
	assert.Equal(t, "102", records[1].ID)
}

func TestParseGalleryPreservesDocumentOrder(t *testing.T) {
	html := galleryPage(
		galleryItem("3", payloadFor("https://cdn.example.com/3.jpg")),
		galleryItem("1", payloadFor("https://cdn.example.com/1.jpg")),
		galleryItem("2", payloadFor("https://cdn.example.com/2.jpg")),
	)

	records, err := ParseGallery(html)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"3", "1", "2"}, []string{records[0].ID, records[1].ID, records[2].ID})
}

func TestParseGallerySkipsMalformedPayload(t *testing.T) {
	html := galleryPage(
		galleryItem("101", payloadFor("https://cdn.example.com/101.jpg")),
		galleryItem("102", `{not json at all`),
		galleryItem("103", payloadFor("https://cdn.example.com/103.jpg")),
	)

	records, err := ParseGallery(html)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "101", records[0].ID)
	assert.Equal(t, "103", records[1].ID)
}

func TestParseGallerySkipsItemWithoutID(t *testing.T) {
	html := galleryPage(
		`<a class="photo-item"><div id="photoJSON_x">`+payloadFor("https://cdn.example.com/x.jpg")+`</div></a>`,
		galleryItem("104", payloadFor("https://cdn.example.com/104.jpg")),
	)

	records, err := ParseGallery(html)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "104", records[0].ID)
}

func TestParseGallerySkipsMissingImageField(t *testing.T) {
	html := galleryPage(
		galleryItem("105", `{"photo": {"photo_img_sm": "https://cdn.example.com/small.jpg"}}`),
	)

	records, err := ParseGallery(html)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseGalleryFiltersLogoAssets(t *testing.T) {
	html := galleryPage(
		galleryItem("106", payloadFor(`https:\/\/cdn.example.com\/beer_logos\/brand.jpg`)),
		galleryItem("107", payloadFor(`https:\/\/cdn.example.com\/brewery_logos\/venue.jpg`)),
		galleryItem("108", payloadFor(`https:\/\/cdn.example.com\/photos\/real.jpg`)),
	)

	records, err := ParseGallery(html)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "108", records[0].ID)
}

func TestParseGalleryEmptyDocument(t *testing.T) {
	records, err := ParseGallery("<html><body><p>no gallery here</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNormalizeImageURL(t *testing.T) {
	assert.Equal(t,
		"https://cdn.example.com/photos/a.jpg",
		NormalizeImageURL(`https:\/\/cdn.example.com\/photos\/a.jpg`))
	assert.Equal(t,
		"https://cdn.example.com/photos/a.jpg",
		NormalizeImageURL("https://cdn.example.com/photos/a.jpg"))
}

func TestIsLogoAsset(t *testing.T) {
	assert.True(t, IsLogoAsset("https://cdn.example.com/beer_logos/x.jpg"))
	assert.True(t, IsLogoAsset("https://cdn.example.com/brewery_logos/x.jpg"))
	assert.False(t, IsLogoAsset("https://cdn.example.com/photos/x.jpg"))
}
