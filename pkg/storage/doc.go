// Package storage provides destination-directory management for downloaded
// photos.
//
// The Manager type creates the output directory if absent, scans it on
// startup so that re-runs skip files that already exist, and writes new
// files atomically: data is streamed to a temporary file and renamed into
// place only after a complete write. A failed or interrupted stream removes
// the temporary file and never leaves a truncated final file behind.
//
// Usage:
//
//	manager, err := storage.NewManager("photos_someuser")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if !manager.Exists("photo_0001.jpg") {
//	    err = manager.SaveFile(body, "photo_0001.jpg")
//	}
package storage
