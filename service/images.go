// service/images.go
package service

import (
	"encoding/base64"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ViniZap4/lumi-notes/domain"
)

// processImages keeps the entries that carry data, a name and a mime type,
// and gives each a fresh filename.
func processImages(in []ImageInput, now time.Time) ([]domain.Image, error) {
	images := make([]domain.Image, 0, len(in))
	for _, img := range in {
		if img.Data == "" || img.OriginalName == "" || img.Mimetype == "" {
			continue
		}
		data := stripDataURL(img.Data)
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, domain.Validationf("Invalid image data for %s", img.OriginalName)
		}
		size := img.Size
		if size <= 0 {
			size = int64(len(decoded))
		}
		images = append(images, domain.Image{
			Filename:     imageFilename(img.OriginalName, now),
			OriginalName: img.OriginalName,
			Mimetype:     img.Mimetype,
			Size:         size,
			Data:         data,
		})
	}
	return images, nil
}

// stripDataURL drops a "data:<mime>;base64," prefix.
func stripDataURL(data string) string {
	if !strings.HasPrefix(data, "data:") {
		return data
	}
	if _, payload, ok := strings.Cut(data, ";base64,"); ok {
		return payload
	}
	return data
}

// imageFilename is {unixMillis}-{9 random chars}.{ext}.
func imageFilename(originalName string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	name := fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
	if ext := strings.TrimPrefix(path.Ext(originalName), "."); ext != "" {
		name += "." + strings.ToLower(ext)
	}
	return name
}

func removeImages(images []domain.Image, filenames []string) []domain.Image {
	if len(filenames) == 0 {
		return images
	}
	return slices.DeleteFunc(slices.Clone(images), func(img domain.Image) bool {
		return slices.Contains(filenames, img.Filename)
	})
}
