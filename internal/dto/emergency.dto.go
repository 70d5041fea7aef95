package dto

import (
	"github.com/R0UTS/Animal-Hospitalty/internal/media"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

const UploadsPath = "/uploads/"

// EmergencyDTO is a report plus the URLs its attachments are served from.
// Thumbnail URLs may 404 until the background render finishes.
type EmergencyDTO struct {
	*models.Emergency

	ImageURLs     []string `json:"imageUrls"`
	ThumbnailURLs []string `json:"thumbnailUrls"`
	VideoURLs     []string `json:"videoUrls"`
}

func NewEmergencyDTO(e *models.Emergency) EmergencyDTO {
	out := EmergencyDTO{
		Emergency:     e,
		ImageURLs:     make([]string, 0, len(e.Images)),
		ThumbnailURLs: make([]string, 0, len(e.Images)),
		VideoURLs:     make([]string, 0, len(e.Videos)),
	}
	for _, key := range e.Images {
		out.ImageURLs = append(out.ImageURLs, UploadsPath+key)
		if media.IsImage(key) {
			out.ThumbnailURLs = append(out.ThumbnailURLs, UploadsPath+media.ThumbKey(key))
		}
	}
	for _, key := range e.Videos {
		out.VideoURLs = append(out.VideoURLs, UploadsPath+key)
	}
	return out
}

func NewEmergencyList(list []models.Emergency) []EmergencyDTO {
	out := make([]EmergencyDTO, 0, len(list))
	for i := range list {
		out = append(out, NewEmergencyDTO(&list[i]))
	}
	return out
}
