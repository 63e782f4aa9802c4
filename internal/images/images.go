// Package images builds the URLs of the image services shown next to records.
package images

import (
	"net/url"
	"strconv"
)

const (
	avatarBase = "https://ui-avatars.com/api/"
	photoBase  = "https://source.unsplash.com/collection/190727/"
)

// AvatarURL returns a generated avatar for a person's name.
func AvatarURL(name string) string {
	q := url.Values{}
	q.Set("name", name)
	q.Set("background", "random")
	return avatarBase + "?" + q.Encode()
}

// CoursePhotoURL returns a stock photo keyed by course id.
func CoursePhotoURL(id int) string {
	return photoBase + strconv.Itoa(id)
}
