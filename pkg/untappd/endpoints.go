package untappd

import "fmt"

const (
	// BaseURL is the base URL for Untappd
	BaseURL = "https://untappd.com"

	// LoginPath is the login surface the operator authenticates on
	LoginPath = "/login"
)

// LoginURL returns the URL of the interactive login page
func LoginURL() string {
	return BaseURL + LoginPath
}

// UserPhotosURL constructs the URL of a user's photo gallery
func UserPhotosURL(username string) string {
	return fmt.Sprintf("%s/user/%s/photos", BaseURL, username)
}
