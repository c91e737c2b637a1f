package uploader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/bowl/internal/bowlerr"
)

// TestPlatform maps each platform to its endpoint and form field.
func TestPlatform(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/api/apps/android/versions", PlatformAndroid.Endpoint())
	require.Equal(t, "apk", PlatformAndroid.FieldName())
	require.Equal(t, "/api/apps/ios/versions", PlatformIOS.Endpoint())
	require.Equal(t, "ipa", PlatformIOS.FieldName())
}

// TestDecodeResponse classifies every kind of backend answer.
func TestDecodeResponse(t *testing.T) {
	t.Parallel()

	resp, err := decodeResponse(http.StatusCreated, []byte(`{"installUrl":"https://x/y","link":"https://x/z"}`))
	require.NoError(t, err)
	require.Equal(t, &VersionResponse{InstallURL: "https://x/y", Link: "https://x/z"}, resp)

	_, err = decodeResponse(http.StatusUnprocessableEntity, []byte(`{"message":"App could not be created"}`))

	var processingErr *bowlerr.ProcessingError
	require.ErrorAs(t, err, &processingErr)
	require.Equal(t, http.StatusUnprocessableEntity, processingErr.StatusCode)

	_, err = decodeResponse(http.StatusBadGateway, []byte("upstream down"))

	var uploadErr *bowlerr.UploadError
	require.ErrorAs(t, err, &uploadErr)
	require.Equal(t, http.StatusBadGateway, uploadErr.StatusCode)
	require.Equal(t, "upstream down", uploadErr.Body)
	require.False(t, errors.As(err, &processingErr))

	_, err = decodeResponse(http.StatusOK, []byte("<html>"))

	var clientErr *bowlerr.APIClientError
	require.ErrorAs(t, err, &clientErr)
}

// TestClient_PostVersion checks the wire format of the multipart request.
func TestClient_PostVersion(t *testing.T) {
	t.Parallel()

	ipa := filepath.Join(t.TempDir(), "Runner.ipa")
	require.NoError(t, os.WriteFile(ipa, []byte("ipa-bytes"), 0o600))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/apps/ios/versions" {
			http.Error(w, "unexpected "+r.Method+" "+r.URL.Path, http.StatusNotFound)
			return
		}

		if r.Header.Get("Accept") != "application/json" || r.Header.Get(HeaderAuthToken) != "secret" {
			http.Error(w, "bad headers", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("ipa")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, _ := io.ReadAll(file)

		if string(data) != "ipa-bytes" ||
			header.Filename != "Runner.ipa" ||
			header.Header.Get("Content-Type") != "application/octet-stream" ||
			r.FormValue("version") != "3.4.5" ||
			r.FormValue("mandatory") != "true" {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"installUrl":"https://bowl/install/1","link":"https://bowl/versions/1"}`)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL+"/", "secret")
	t.Cleanup(func() {
		_ = client.Close()
	})

	resp, err := client.PostVersion(context.Background(), &VersionUpload{
		Platform:  PlatformIOS,
		FilePath:  ipa,
		Version:   "3.4.5",
		Mandatory: true,
	})
	require.NoError(t, err)
	require.Equal(t, "https://bowl/install/1", resp.InstallURL)
	require.Equal(t, "https://bowl/versions/1", resp.Link)
}

// TestClient_PostVersion_Unreachable surfaces transport failures as APIClientError.
func TestClient_PostVersion_Unreachable(t *testing.T) {
	t.Parallel()

	apk := filepath.Join(t.TempDir(), "app.apk")
	require.NoError(t, os.WriteFile(apk, []byte("apk"), 0o600))

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, "secret")
	t.Cleanup(func() {
		_ = client.Close()
	})

	_, err := client.PostVersion(context.Background(), &VersionUpload{
		Platform: PlatformAndroid,
		FilePath: apk,
		Version:  "1.0.0",
	})

	var clientErr *bowlerr.APIClientError
	require.ErrorAs(t, err, &clientErr)
}
