package helper

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// InitCloudinary and UploadVenueImage are variables so tests can swap the
// provider out without touching the handlers.
var InitCloudinary = func() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}

// UploadVenueImage pushes one multipart image to the venues folder and
// returns its secure URL and public id.
var UploadVenueImage = func(cld *cloudinary.Cloudinary, file *multipart.FileHeader, venueName string) (string, string, error) {
	fileReader, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer fileReader.Close()

	result, err := cld.Upload.Upload(context.Background(), fileReader, uploader.UploadParams{
		Folder:       "venues",
		PublicID:     fmt.Sprintf("venue_%s_%d", strings.ReplaceAll(venueName, " ", "_"), time.Now().UnixNano()),
		ResourceType: "image",
	})
	if err != nil {
		return "", "", err
	}
	return result.SecureURL, result.PublicID, nil
}

// DestroyImage removes an uploaded asset. Failures are logged only: the
// database row is already gone and a dangling asset is harmless.
func DestroyImage(cld *cloudinary.Cloudinary, publicID string) {
	if cld == nil || publicID == "" {
		return
	}
	_, err := cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		log.Printf("cloudinary: destroy %s failed: %v", publicID, err)
	}
}
