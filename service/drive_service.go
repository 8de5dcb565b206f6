package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveRefPrefix marks image references stored in Google Drive, e.g. drive://1AbC
const DriveRefPrefix = "drive://"

// maxImageBytes bounds a single image download
const maxImageBytes = 20 << 20

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// DownloadImage downloads the content of an image file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	log.Printf("📥 Downloading Drive file %s", fileID)

	meta, err := ds.client.Files.Get(fileID).Fields("id, mimeType, size").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata: %w", err)
	}
	if !strings.HasPrefix(strings.ToLower(meta.MimeType), "image/") {
		return nil, fmt.Errorf("drive file %s is %s, not an image", fileID, meta.MimeType)
	}

	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	return data, nil
}

// DriveFileID extracts the file id from a drive:// reference
func DriveFileID(ref string) (string, bool) {
	id, ok := strings.CutPrefix(ref, DriveRefPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
