package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/mocks"
	"github.com/livefit/livefit-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler_Upload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uploads := &mocks.MockUploadService{}
		h := NewUploadHandler(uploads, 0)
		uploads.On("Upload", mock.Anything, mock.MatchedBy(func(r io.Reader) bool {
			b, err := io.ReadAll(r)
			return err == nil && string(b) == "image-bytes"
		})).Return("https://storage.example.com/images/a.png?sig", nil)

		rec := httptest.NewRecorder()
		h.Upload(rec, multipartRequest(t, "file", []byte("image-bytes")))

		assert.Equal(t, http.StatusOK, rec.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		var got UploadResponse
		decodeData(t, env, &got)
		assert.Equal(t, "https://storage.example.com/images/a.png?sig", got.ImageURL)
	})

	t.Run("missing file field", func(t *testing.T) {
		uploads := &mocks.MockUploadService{}
		h := NewUploadHandler(uploads, 0)

		rec := httptest.NewRecorder()
		h.Upload(rec, multipartRequest(t, "avatar", []byte("image-bytes")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgInvalidFields)
		uploads.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("unsupported content", func(t *testing.T) {
		uploads := &mocks.MockUploadService{}
		h := NewUploadHandler(uploads, 0)
		uploads.On("Upload", mock.Anything, mock.Anything).Return("", service.ErrUnsupportedImage)

		rec := httptest.NewRecorder()
		h.Upload(rec, multipartRequest(t, "file", []byte("plain text")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgInvalidFields)
	})

	t.Run("body limit follows the configured image size", func(t *testing.T) {
		const imageLimit = 6 << 20
		uploads := &mocks.MockUploadService{}
		h := NewUploadHandler(uploads, imageLimit)
		image := bytes.Repeat([]byte{0x89}, 5<<20)
		uploads.On("Upload", mock.Anything, mock.MatchedBy(func(r io.Reader) bool {
			n, err := io.Copy(io.Discard, r)
			return err == nil && n == int64(len(image))
		})).Return("https://storage.example.com/images/big.png?sig", nil)

		rec := httptest.NewRecorder()
		h.Upload(rec, multipartRequest(t, "file", image))

		assert.Equal(t, http.StatusOK, rec.Code)
		uploads.AssertExpectations(t)
	})

	t.Run("body beyond the limit is rejected", func(t *testing.T) {
		uploads := &mocks.MockUploadService{}
		h := NewUploadHandler(uploads, 1<<10)

		rec := httptest.NewRecorder()
		h.Upload(rec, multipartRequest(t, "file", bytes.Repeat([]byte{0x89}, 2<<20)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgInvalidFields)
		uploads.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("disabled", func(t *testing.T) {
		uploads := &mocks.MockUploadService{}
		h := NewUploadHandler(uploads, 0)
		uploads.On("Upload", mock.Anything, mock.Anything).Return("", service.ErrUploadDisabled)

		rec := httptest.NewRecorder()
		h.Upload(rec, multipartRequest(t, "file", []byte("image-bytes")))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"error"`)
	})
}

func TestUploadHandler_List(t *testing.T) {
	t.Run("images", func(t *testing.T) {
		uploads := &mocks.MockUploadService{}
		h := NewUploadHandler(uploads, 0)
		uploads.On("ListImages", mock.Anything).
			Return([]service.Image{{Name: "images/a.png", URL: "https://signed/a"}}, nil)

		rec, env := serve(t, http.MethodGet, "/", "/", nil, uuid.New(), h.List)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got ImageListResponse
		decodeData(t, env, &got)
		assert.Equal(t, []service.Image{{Name: "images/a.png", URL: "https://signed/a"}}, got.ImageList)
	})

	t.Run("empty list is not null", func(t *testing.T) {
		uploads := &mocks.MockUploadService{}
		h := NewUploadHandler(uploads, 0)
		uploads.On("ListImages", mock.Anything).Return(nil, nil)

		rec, env := serve(t, http.MethodGet, "/", "/", nil, uuid.New(), h.List)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"image_list":[]}`, string(env.Data))
	})
}
