package models

import "github.com/gosimple/slug"

// Slugify derives the URL-safe identifier for a title ("Web Design" ->
// "web-design"). Recomputed on every title write, never stored stale.
func Slugify(title string) string {
	return slug.Make(title)
}
