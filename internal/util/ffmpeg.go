package util

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	inspectTimeout   = 30 * time.Second
	thumbnailWidth = 480
)

// VideoInfo is what the upload listing shows next to a lesson video.
type VideoInfo struct {
	Duration float64
	Width    int
	Height   int
}

type streamReport struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// InspectVideo reads duration and frame size with ffprobe. A file without a
// video stream is an error.
func InspectVideo(videoPath string) (*VideoInfo, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return nil, errors.Wrap(err, "stat video")
	}

	raw, err := ffmpeg.ProbeWithTimeout(videoPath, inspectTimeout, ffmpeg.KwArgs{})
	if err != nil {
		return nil, errors.Wrap(err, "ffprobe")
	}

	var out streamReport
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, errors.Wrap(err, "parse ffprobe output")
	}

	info := &VideoInfo{}
	for _, stream := range out.Streams {
		if stream.CodecType == "video" {
			info.Width, info.Height = stream.Width, stream.Height
			break
		}
	}
	if info.Width == 0 {
		return nil, errors.New("no video stream")
	}

	if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		info.Duration = math.Round(d*100) / 100
	}
	return info, nil
}

// ThumbnailOffset picks the frame to grab: one second in, or the middle of
// clips shorter than two seconds.
func ThumbnailOffset(duration float64) float64 {
	if duration > 0 && duration < 2 {
		return duration / 2
	}
	return 1
}

// VideoThumbnail writes a single JPEG frame, scaled to a fixed width, taken
// at the given offset in seconds.
func VideoThumbnail(videoPath, thumbnailPath string, at float64) error {
	if err := os.MkdirAll(filepath.Dir(thumbnailPath), 0o755); err != nil {
		return errors.Wrap(err, "create thumbnail dir")
	}

	err := ffmpeg.Input(videoPath, ffmpeg.KwArgs{"ss": strconv.FormatFloat(at, 'f', 2, 64)}).
		Output(thumbnailPath, ffmpeg.KwArgs{
			"vframes": "1",
			"vf":      "scale=" + strconv.Itoa(thumbnailWidth) + ":-2",
			"q:v":     "3",
		}).
		OverWriteOutput().
		Silent(true).
		Run()
	return errors.Wrap(err, "ffmpeg thumbnail")
}
