package http

import (
	"strconv"

	"clipstream/pkg/apperr"
	"clipstream/pkg/query"
	"clipstream/pkg/response"
	"clipstream/services/video/internal/usecase"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoUseCase usecase.VideoUseCase
}

func NewVideoHandler(videoUseCase usecase.VideoUseCase) *VideoHandler {
	return &VideoHandler{
		videoUseCase: videoUseCase,
	}
}

type UpdateVideoRequest struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
}

func listParams(c *gin.Context) query.Params {
	return query.Parse(
		c.Query("page"),
		c.Query("limit"),
		c.Query("query"),
		c.Query("sortBy"),
		c.Query("sortType"),
	)
}

// PublishVideo godoc
// @Summary      Publish a new video
// @Description  Upload a video file with its thumbnail, title and description
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Video title"
// @Param        description formData string true "Video description"
// @Param        duration formData number false "Duration in seconds"
// @Param        videoFile formData file true "Video file"
// @Param        thumbnail formData file true "Thumbnail image"
// @Success      201  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Router       /videos [post]
func (h *VideoHandler) PublishVideo(c *gin.Context) {
	userID := c.GetString("user_id")

	title := c.PostForm("title")
	description := c.PostForm("description")
	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

	videoFile, _ := c.FormFile("videoFile")
	thumbnail, _ := c.FormFile("thumbnail")

	video, err := h.videoUseCase.PublishVideo(userID, title, description, duration, videoFile, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, video, "Video published successfully")
}

// ListVideos godoc
// @Summary      List videos
// @Description  Paginated video listing with search, sorting and optional channel filter
// @Tags         videos
// @Produce      json
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Param        query query string false "Search over title and description"
// @Param        sortBy query string false "Sort key" Enums(created_at, views, duration, title)
// @Param        sortType query string false "Sort direction" Enums(asc, desc)
// @Param        userId query string false "Filter to one channel"
// @Success      200  {object}  response.Envelope
// @Router       /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	p := listParams(c)
	channelID := c.Query("userId")
	viewerID := c.GetString("user_id")

	videos, total, err := h.videoUseCase.ListVideos(p, channelID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"videos": videos,
		"total":  total,
		"page":   p.Page,
		"limit":  p.Limit,
	}, "Videos fetched successfully")
}

func (h *VideoHandler) GetMyVideos(c *gin.Context) {
	userID := c.GetString("user_id")
	p := listParams(c)

	videos, total, err := h.videoUseCase.GetMyVideos(userID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"videos": videos,
		"total":  total,
		"page":   p.Page,
		"limit":  p.Limit,
	}, "Videos fetched successfully")
}

// GetVideo godoc
// @Summary      Get a video by id
// @Tags         videos
// @Produce      json
// @Param        id path string true "Video ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /videos/{id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	video, err := h.videoUseCase.GetVideo(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, video, "Video fetched successfully")
}

// UpdateVideo godoc
// @Summary      Update a video
// @Description  Owner-only update of title, description and thumbnail
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Video ID"
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /videos/{id} [patch]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	userID := c.GetString("user_id")
	videoID := c.Param("id")

	var req UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperr.InvalidArgument("Invalid request body"))
		return
	}
	thumbnail, _ := c.FormFile("thumbnail")

	video, err := h.videoUseCase.UpdateVideo(videoID, userID, req.Title, req.Description, thumbnail)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, video, "Video updated successfully")
}

func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.videoUseCase.DeleteVideo(c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	userID := c.GetString("user_id")

	published, err := h.videoUseCase.TogglePublish(c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"is_published": published}, "Publish status toggled successfully")
}

func (h *VideoHandler) RecordView(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.videoUseCase.RecordView(c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "View recorded")
}

// GetDashboardStats godoc
// @Summary      Channel dashboard stats
// @Description  Totals for the authenticated channel owner: videos, views, subscribers, likes
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Router       /dashboard/stats [get]
func (h *VideoHandler) GetDashboardStats(c *gin.Context) {
	userID := c.GetString("user_id")

	stats, err := h.videoUseCase.GetDashboardStats(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, stats, "Channel stats fetched successfully")
}
