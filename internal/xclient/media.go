package xclient

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	CategoryTweetImage = "tweet_image"
	CategoryDMImage    = "dm_image"
	CategorySubtitles  = "subtitles"
)

var mediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
}

// MediaType maps a file extension to the upload content type.
func MediaType(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mt, ok := mediaTypes[ext]
	if !ok {
		return "", &MediaError{Path: path, Reason: "unsupported file type " + ext}
	}
	return mt, nil
}

// UploadMedia uploads one file as multipart form data and returns its media id.
// Only the OAuth parameters sign this request.
func (c *Client) UploadMedia(ctx context.Context, path, category string) (string, error) {
	if category == "" {
		category = CategoryTweetImage
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", &MediaError{Path: path, Reason: "file not found"}
	}
	mt, err := MediaType(path)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", &MediaError{Path: path, Reason: "open file"}
	}
	defer f.Close()

	var resp struct {
		Data *struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	err = c.Do(ctx, Request{
		Name:   "media_upload",
		Method: http.MethodPost,
		Path:   "/2/media/upload",
		Multipart: &Multipart{
			Fields:      map[string]string{"media_category": category},
			FileField:   "media",
			FileName:    filepath.Base(path),
			ContentType: mt,
			File:        f,
		},
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return "", &APIError{StatusCode: http.StatusOK, Title: "media upload failed", Detail: "response has no data"}
	}
	return resp.Data.ID, nil
}
