package doctorq

import (
	"context"

	"github.com/spf13/afero"

	"github.com/doctorq/doctorq-sdk/pkg/models"
)

// UploadDocument sends the file at path on fs, plus any non-empty fields,
// to the upload endpoint.
func (c *Client) UploadDocument(ctx context.Context, fs afero.Fs, path string, fields map[string]string) (*models.UploadResult, error) {
	var result models.UploadResult
	if err := c.API.UploadFromFS(ctx, fs, path, EndpointUpload, fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
