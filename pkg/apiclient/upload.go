package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"
)

// UploadFile is the file part of a multipart upload.
type UploadFile struct {
	FieldName string // form field name, default "file"
	FileName  string
	Content   io.Reader
}

// Upload sends file and fields as multipart/form-data and decodes the
// response into out when non-nil. Errors follow the same contract as
// Request.
func (c *Client) Upload(ctx context.Context, endpoint string, file UploadFile, fields map[string]string, out any) error {
	if file.Content == nil {
		return fmt.Errorf("upload content is required")
	}
	if file.FieldName == "" {
		file.FieldName = "file"
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(file.FieldName, file.FileName)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return fmt.Errorf("failed to read upload content: %w", err)
	}

	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := writer.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, &buf,
		WithHeader("Content-Type", writer.FormDataContentType()))
	if err != nil {
		return err
	}

	resp, err := c.do(req, c.target(endpoint))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpError(resp, respBody)
	}

	result := &Result{StatusCode: resp.StatusCode, Body: respBody}
	if out == nil || result.NoContent() {
		return nil
	}
	return result.Decode(out)
}

// UploadFromFS uploads the file at path from fs.
func (c *Client) UploadFromFS(ctx context.Context, fs afero.Fs, path, endpoint string, fields map[string]string, out any) error {
	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return c.Upload(ctx, endpoint, UploadFile{
		FileName: filepath.Base(path),
		Content:  f,
	}, fields, out)
}
