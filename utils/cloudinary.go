package utils

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// UploadAvatar pushes an image to Cloudinary's signed upload endpoint and
// returns the hosted URL. Uploads land in the "pcrl/avatars" folder under
// a random public id.
func UploadAvatar(file io.Reader, filename string) (string, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return "", fmt.Errorf("cloudinary credentials are not configured")
	}

	publicID := uuid.NewString()
	folder := "pcrl/avatars"
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	// Cloudinary signs the sorted parameter string with the API secret.
	toSign := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s%s",
		folder, publicID, timestamp, apiSecret)
	digest := sha1.Sum([]byte(toSign))
	signature := hex.EncodeToString(digest[:])

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}

	fields := map[string]string{
		"api_key":   apiKey,
		"timestamp": timestamp,
		"public_id": publicID,
		"folder":    folder,
		"signature": signature,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cloudName)
	resp, err := http.Post(endpoint, writer.FormDataContentType(), &body)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("cloudinary upload failed (%d): %s", resp.StatusCode, raw)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode cloudinary response: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary response missing secure_url")
	}

	return result.SecureURL, nil
}
