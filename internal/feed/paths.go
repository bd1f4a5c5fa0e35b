package feed

import (
	"path/filepath"
	"strings"
)

const feedSubdir = "gswc-feeds"

// Dir is the directory all feed files live in.
func Dir(uploadsDir string) string {
	return filepath.Join(uploadsDir, feedSubdir)
}

// Path is the deterministic file location of a channel's feed.
func Path(uploadsDir string, channel string) string {
	return filepath.Join(Dir(uploadsDir), channel+"-feed.xml")
}

// URL is the public location of a channel's feed under the uploads base URL.
func URL(uploadsURL string, channel string) string {
	return strings.TrimRight(uploadsURL, "/") + "/" + feedSubdir + "/" + channel + "-feed.xml"
}
