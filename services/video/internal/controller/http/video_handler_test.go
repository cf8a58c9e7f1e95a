package http

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"clipstream/pkg/apperr"
	"clipstream/pkg/query"
	"clipstream/pkg/response"
	"clipstream/services/video/internal/entity"
	"clipstream/services/video/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockVideoUseCase is a mock implementation of VideoUseCase
type MockVideoUseCase struct {
	mock.Mock
}

func (m *MockVideoUseCase) PublishVideo(ownerID, title, description string, duration float64, videoFile, thumbnail *multipart.FileHeader) (*entity.Video, error) {
	args := m.Called(ownerID, title, description, duration, videoFile, thumbnail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) ListVideos(p query.Params, channelID, viewerID string) ([]*entity.Video, int64, error) {
	args := m.Called(p, channelID, viewerID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Video), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoUseCase) GetMyVideos(ownerID string, p query.Params) ([]*entity.Video, int64, error) {
	args := m.Called(ownerID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Video), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoUseCase) GetVideo(id string) (*entity.Video, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) UpdateVideo(videoID, actorID string, title, description *string, thumbnail *multipart.FileHeader) (*entity.Video, error) {
	args := m.Called(videoID, actorID, title, description, thumbnail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) DeleteVideo(videoID, actorID string) error {
	args := m.Called(videoID, actorID)
	return args.Error(0)
}

func (m *MockVideoUseCase) TogglePublish(videoID, actorID string) (bool, error) {
	args := m.Called(videoID, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVideoUseCase) RecordView(videoID, viewerID string) error {
	args := m.Called(videoID, viewerID)
	return args.Error(0)
}

func (m *MockVideoUseCase) GetDashboardStats(ownerID string) (*entity.DashboardStats, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DashboardStats), args.Error(1)
}

var _ usecase.VideoUseCase = (*MockVideoUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asUser(userID string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		handler(c)
	}
}

func TestListVideos_PassesNormalizedParams(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/videos", handler.ListVideos)

	expected := query.Params{Page: 2, Limit: 5, Query: "cats", SortBy: "views", SortDir: "asc"}
	mockUseCase.On("ListVideos", expected, "", "").
		Return([]*entity.Video{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos?page=2&limit=5&query=cats&sortBy=views&sortType=asc", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestListVideos_MalformedPaginationFallsBack(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/videos", handler.ListVideos)

	expected := query.Params{Page: 1, Limit: 10}
	mockUseCase.On("ListVideos", expected, "", "").
		Return([]*entity.Video{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos?page=zero&limit=-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetVideo_NotFound(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/videos/:id", handler.GetVideo)

	mockUseCase.On("GetVideo", "nope").Return(nil, apperr.NotFound("Video not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos/nope", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var env response.Envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Video not found", env.Message)
}

func TestDeleteVideo_Forbidden(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/videos/:id", asUser("intruder", handler.DeleteVideo))

	mockUseCase.On("DeleteVideo", "video-1", "intruder").
		Return(apperr.Forbidden("You can only modify your own resources"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/videos/video-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTogglePublish(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/videos/:id/toggle-publish", asUser("owner-1", handler.TogglePublish))

	mockUseCase.On("TogglePublish", "video-1", "owner-1").Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/video-1/toggle-publish", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_published":false`)
}

func TestGetDashboardStats(t *testing.T) {
	mockUseCase := new(MockVideoUseCase)
	handler := NewVideoHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/dashboard/stats", asUser("owner-1", handler.GetDashboardStats))

	mockUseCase.On("GetDashboardStats", "owner-1").Return(&entity.DashboardStats{
		TotalVideos: 2, TotalViews: 33, TotalSubscribers: 4, TotalLikes: 9,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/dashboard/stats", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_views":33`)
}
