package uploader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"resty.dev/v3"

	"github.com/oshokin/bowl/internal/bowlerr"
	"github.com/oshokin/bowl/internal/version"
)

// Platform selects the endpoint and the form field of the artifact.
type Platform string

const (
	// PlatformAndroid uploads an APK.
	PlatformAndroid Platform = "android"
	// PlatformIOS uploads an IPA.
	PlatformIOS Platform = "ios"
)

const (
	// HeaderAuthToken carries the M2M token.
	HeaderAuthToken = "X-M2M-Auth-Token"

	// processingFailureMarker is part of the body returned when the backend cannot create the app record.
	processingFailureMarker = "App could not be created"

	contentTypeJSON   = "application/json"
	contentTypeBinary = "application/octet-stream"
)

// Endpoint returns the path that accepts new versions for the platform.
func (p Platform) Endpoint() string {
	return "/api/apps/" + string(p) + "/versions"
}

// FieldName returns the multipart field holding the artifact.
func (p Platform) FieldName() string {
	if p == PlatformIOS {
		return "ipa"
	}

	return "apk"
}

// VersionUpload describes one build to upload.
type VersionUpload struct {
	Platform  Platform
	FilePath  string
	Version   string
	Mandatory bool
}

// VersionResponse is the JSON body of a successful upload.
type VersionResponse struct {
	// InstallURL lets testers install the build directly.
	InstallURL string `json:"installUrl"`
	// Link points to the version page where it can be approved.
	Link string `json:"link"`
}

// Client talks to the BOWL backend.
type Client struct {
	http  *resty.Client
	token string
}

// NewClient creates a client for the backend at baseURL authenticating with token.
// Requests are not retried.
func NewClient(baseURL, token string) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("User-Agent", version.UserAgent()).
		SetRetryCount(0)

	return &Client{
		http:  client,
		token: token,
	}
}

// Close releases idle connections of the underlying transport.
func (c *Client) Close() error {
	return c.http.Close()
}

// PostVersion uploads the build in a single multipart request.
func (c *Client) PostVersion(ctx context.Context, upload *VersionUpload) (*VersionResponse, error) {
	file, err := os.Open(filepath.Clean(upload.FilePath))
	if err != nil {
		return nil, bowlerr.NewFileIOError("open "+upload.FilePath, err)
	}

	defer func() {
		_ = file.Close()
	}()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", contentTypeJSON).
		SetHeader(HeaderAuthToken, c.token).
		SetMultipartField(upload.Platform.FieldName(), filepath.Base(upload.FilePath), contentTypeBinary, file).
		SetMultipartFormData(map[string]string{
			"version":   upload.Version,
			"mandatory": strconv.FormatBool(upload.Mandatory),
		}).
		SetResponseBodyUnlimitedReads(true).
		Post(upload.Platform.Endpoint())
	if err != nil {
		return nil, bowlerr.NewAPIClientError(fmt.Errorf("POST %s: %w", upload.Platform.Endpoint(), err))
	}

	return decodeResponse(resp.StatusCode(), resp.Bytes())
}

// decodeResponse turns the status and body of the upload endpoint into a result or a typed error.
func decodeResponse(statusCode int, body []byte) (*VersionResponse, error) {
	if statusCode < 200 || statusCode >= 300 {
		if strings.Contains(string(body), processingFailureMarker) {
			return nil, bowlerr.NewProcessingError(statusCode)
		}

		return nil, bowlerr.NewUploadError(statusCode, string(body))
	}

	var out VersionResponse
	if len(body) == 0 {
		return &out, nil
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return nil, bowlerr.NewAPIClientError(fmt.Errorf("decode response (status %d): %w", statusCode, err))
	}

	return &out, nil
}
