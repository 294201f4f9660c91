package untappd

// PhotoRecord is one discovered gallery photo. A record is only created
// once an original-resolution image URL has been parsed from the item's
// JSON payload.
type PhotoRecord struct {
	// ID is the site-assigned stable photo identifier, unique within a
	// gallery. It is the deduplication key across extraction passes.
	ID string `json:"photo_id"`

	// ImageURL is the fully resolved, escape-normalized URL of the
	// original-resolution image asset.
	ImageURL string `json:"url"`
}

// photoPayload mirrors the per-item JSON blob embedded in the gallery DOM
type photoPayload struct {
	Photo struct {
		PhotoImgOG string `json:"photo_img_og"`
	} `json:"photo"`
}
