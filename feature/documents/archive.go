package documents

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"synchub/core/nango"
	"synchub/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MaxArchiveSize caps how large a document the archiver will persist.
const MaxArchiveSize = 10 << 20

// Google-native documents cannot be downloaded directly; they are exported
// to a portable format instead.
var exportFormats = map[string]string{
	"application/vnd.google-apps.document":     "text/plain",
	"application/vnd.google-apps.spreadsheet":  "text/csv",
	"application/vnd.google-apps.presentation": "text/plain",
}

// Archiver fetches document content through the platform proxy and stores
// it in the archive bucket.
type Archiver struct {
	proxy  nango.Proxier
	store  storage.Client
	bucket string
	logger *zap.Logger
}

// NewArchiver creates an archiver writing to the given bucket.
func NewArchiver(proxy nango.Proxier, store storage.Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{proxy: proxy, store: store, bucket: bucket, logger: logger}
}

// Scope identifies the connection an archive request runs against.
type Scope struct {
	ConnectionID      string
	ProviderConfigKey string
}

// Archive downloads the document and writes it to the bucket under
// documents/<connection>/<id>. It returns the object name. Documents over
// MaxArchiveSize are rejected before the download.
func (a *Archiver) Archive(ctx context.Context, scope Scope, documentID string) (string, error) {
	meta, err := a.fetchMetadata(ctx, scope, documentID)
	if err != nil {
		return "", err
	}
	if meta.size > MaxArchiveSize {
		return "", fmt.Errorf("document %s is %d bytes, archive cap is %d", documentID, meta.size, MaxArchiveSize)
	}

	content, contentType, err := a.download(ctx, scope, documentID, meta.mimeType)
	if err != nil {
		return "", err
	}
	if int64(len(content)) > MaxArchiveSize {
		return "", fmt.Errorf("document %s exceeded the archive cap after download", documentID)
	}

	objectName := fmt.Sprintf("documents/%s/%s", scope.ConnectionID, documentID)
	_, err = a.store.PutObject(ctx, a.bucket, objectName,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storing archive object: %w", err)
	}

	a.logger.Info("Archived document",
		zap.String("document_id", documentID),
		zap.String("object", objectName),
		zap.Int("bytes", len(content)))
	return objectName, nil
}

type driveMetadata struct {
	mimeType string
	size     int64
}

func (a *Archiver) fetchMetadata(ctx context.Context, scope Scope, documentID string) (driveMetadata, error) {
	resp, err := a.proxy.Proxy(ctx, nango.ProxyRequest{
		Endpoint:          "drive/v3/files/" + documentID,
		ConnectionID:      scope.ConnectionID,
		ProviderConfigKey: scope.ProviderConfigKey,
		Retries:           3,
		Params: map[string]string{
			"fields":            "id, mimeType, size",
			"supportsAllDrives": "true",
		},
	})
	if err != nil {
		return driveMetadata{}, fmt.Errorf("fetching document metadata: %w", err)
	}

	var body struct {
		MimeType string `json:"mimeType"`
		Size     string `json:"size"`
	}
	if err := resp.JSON(&body); err != nil {
		return driveMetadata{}, fmt.Errorf("decoding document metadata: %w", err)
	}

	meta := driveMetadata{mimeType: body.MimeType}
	if body.Size != "" {
		size, err := strconv.ParseInt(body.Size, 10, 64)
		if err != nil {
			return driveMetadata{}, fmt.Errorf("decoding document size %q: %w", body.Size, err)
		}
		meta.size = size
	}
	return meta, nil
}

func (a *Archiver) download(ctx context.Context, scope Scope, documentID, mimeType string) ([]byte, string, error) {
	endpoint := "drive/v3/files/" + documentID
	params := map[string]string{"alt": "media", "supportsAllDrives": "true"}
	contentType := mimeType

	if exportMime, ok := exportFormats[mimeType]; ok {
		endpoint += "/export"
		params = map[string]string{"mimeType": exportMime}
		contentType = exportMime
	}

	resp, err := a.proxy.Proxy(ctx, nango.ProxyRequest{
		Endpoint:          endpoint,
		ConnectionID:      scope.ConnectionID,
		ProviderConfigKey: scope.ProviderConfigKey,
		Retries:           3,
		Params:            params,
	})
	if err != nil {
		return nil, "", fmt.Errorf("downloading document: %w", err)
	}
	return resp.Data, contentType, nil
}
