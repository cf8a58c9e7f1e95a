package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clipstream/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestOK(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		OK(c, gin.H{"id": "video-1"}, "Video fetched successfully")
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var env Envelope
	err := json.Unmarshal(w.Body.Bytes(), &env)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "Video fetched successfully", env.Message)
	assert.NotNil(t, env.Data)
}

func TestCreated(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, gin.H{"id": "video-1"}, "Video uploaded")
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var env Envelope
	err := json.Unmarshal(w.Body.Bytes(), &env)
	assert.NoError(t, err)
	assert.True(t, env.Success)
}

func TestError_MappedStatus(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, apperr.NotFound("Video not found"))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var env Envelope
	err := json.Unmarshal(w.Body.Bytes(), &env)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Video not found", env.Message)
	assert.Nil(t, env.Data)
}

func TestError_InternalHidesDetails(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("pq: connection reset by peer"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var env Envelope
	err := json.Unmarshal(w.Body.Bytes(), &env)
	assert.NoError(t, err)
	assert.Equal(t, "Something went wrong", env.Message)
	assert.False(t, env.Success)
}
