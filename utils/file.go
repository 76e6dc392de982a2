package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// SaveFile stores an uploaded file under dir with a collision-free name
// and returns the saved filename.
func SaveFile(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return filename, nil
}

// SaveThumbnail writes a 360px-wide thumbnail next to the original.
// Returns the thumbnail filename.
func SaveThumbnail(dir, filename string) (string, error) {
	img, err := imaging.Open(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}

	thumb := imaging.Resize(img, 360, 0, imaging.Lanczos)
	thumbName := "thumb_" + filename
	if err := imaging.Save(thumb, filepath.Join(dir, thumbName)); err != nil {
		return "", err
	}
	return thumbName, nil
}
