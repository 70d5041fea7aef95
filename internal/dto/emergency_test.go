package dto

import (
	"encoding/json"
	"testing"

	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

func TestNewEmergencyDTO(t *testing.T) {
	e := &models.Emergency{
		EmergencyID: "e1",
		Status:      "Pending",
		Images:      []string{"1-2.jpg", "1-3.heic"},
		Videos:      []string{"1-4.mp4"},
	}

	d := NewEmergencyDTO(e)
	if len(d.ImageURLs) != 2 || d.ImageURLs[0] != "/uploads/1-2.jpg" {
		t.Errorf("image urls = %v", d.ImageURLs)
	}
	if len(d.ThumbnailURLs) != 1 || d.ThumbnailURLs[0] != "/uploads/thumbs/1-2.webp" {
		t.Errorf("thumb urls = %v", d.ThumbnailURLs)
	}

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		t.Fatal(err)
	}
	if flat["emergencyId"] != "e1" || flat["status"] != "Pending" {
		t.Errorf("report fields not inlined: %s", raw)
	}
}
