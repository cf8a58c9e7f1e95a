package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindImage, KindOf("avatar.png"))
	assert.Equal(t, KindImage, KindOf("photo.JPG"))
	assert.Equal(t, KindVideo, KindOf("clip.mp4"))
	assert.Equal(t, KindVideo, KindOf("movie.MOV"))
	assert.Equal(t, KindRaw, KindOf("archive.zip"))
	assert.Equal(t, KindRaw, KindOf("noextension"))
}

func TestDefaultContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", DefaultContentType("a.jpg"))
	assert.Equal(t, "video/mp4", DefaultContentType("b.mp4"))
	assert.Equal(t, "application/octet-stream", DefaultContentType("c.bin"))
}

func TestKeyFromURL(t *testing.T) {
	c := &Client{bucket: "clipstream-media"}

	// MinIO / path-style URL
	key := c.KeyFromURL("http://localhost:9000/clipstream-media/videos/u1/abc.mp4")
	assert.Equal(t, "videos/u1/abc.mp4", key)

	// AWS virtual-hosted URL
	key = c.KeyFromURL("https://clipstream-media.s3.us-east-1.amazonaws.com/thumbnails/u1/t.png")
	assert.Equal(t, "thumbnails/u1/t.png", key)

	// Foreign URL
	assert.Equal(t, "", c.KeyFromURL("https://example.com/other-bucket/x.png"))
}
