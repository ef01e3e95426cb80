package models

import "io"

// ImageUpload is an image file received for an event.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
