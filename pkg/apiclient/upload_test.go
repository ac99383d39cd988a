package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctorq/doctorq-sdk/pkg/auth"
)

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/", r.URL.Path)
		assert.Equal(t, "Bearer static-key", r.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "alvara", r.FormValue("tipo"))
		_, present := r.MultipartForm.Value["vazio"]
		assert.False(t, present)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "alvara.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4", string(content))

		w.Write([]byte(`{"url":"https://cdn.doctorq.app/alvara.pdf"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(c *Config) {
		c.Credentials = auth.Static("static-key")
	})

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/alvara.pdf", []byte("%PDF-1.4"), 0o644))

	var got struct {
		URL string `json:"url"`
	}
	err := client.UploadFromFS(context.Background(), fs, "/docs/alvara.pdf", "/upload/",
		map[string]string{"tipo": "alvara", "vazio": ""}, &got)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.doctorq.app/alvara.pdf", got.URL)
}

func TestUpload_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.Upload(context.Background(), "/upload/", UploadFile{
		FileName: "big.bin",
		Content:  strings.NewReader("x"),
	}, nil, nil)
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
	assert.Equal(t, "Request Entity Too Large", apiErr.Message)
}

func TestUploadFromFS_MissingFile(t *testing.T) {
	client := newTestClient(t, "https://api.doctorq.app")

	err := client.UploadFromFS(context.Background(), afero.NewMemMapFs(), "/nope.pdf", "/upload/", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}
