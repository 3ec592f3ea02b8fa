package blobstore

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

var ErrNotAnImage = errors.New("file is not a supported image")

var imageExts = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// DetectImage valida que data sea una imagen y devuelve (ext, contentType).
// La extensión del nombre original se respeta si coincide con el tipo detectado.
func DetectImage(filename string, data []byte) (string, string, error) {
	ct := http.DetectContentType(data)
	ext, ok := imageExts[ct]
	if !ok {
		return "", "", ErrNotAnImage
	}

	orig := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if orig == "jpeg" && ext == "jpg" {
		ext = "jpeg"
	}
	return ext, ct, nil
}

// AvatarKey: <uid>/avatar.<ext>
func AvatarKey(userID, ext string) string {
	return userID + "/avatar." + ext
}

// PetImageKey: <uid>/<petID>.<ext>
func PetImageKey(userID, petID, ext string) string {
	return userID + "/" + petID + "." + ext
}

// ServiceImageKey: <serviceID>.<ext>
func ServiceImageKey(serviceID, ext string) string {
	return serviceID + "." + ext
}
