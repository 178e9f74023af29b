package models

import "time"

// Video is a single feed entry after aggregation. Derived per aggregation
// pass, never persisted.
type Video struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Published   time.Time `json:"published"`
	ChannelId   string    `json:"channelId"`
	ChannelName string    `json:"channelName"`
}

// Instance is the origin that feed, watch and thumbnail URLs are built
// against. Chosen once per server invocation and immutable afterwards.
type Instance struct {
	URL    string `json:"url"`
	Mirror bool   `json:"mirror"`
}

// DirectInstance targets the platform itself rather than a mirror.
func DirectInstance() Instance {
	return Instance{URL: "https://www.youtube.com"}
}

// FeedURL builds the syndication feed URL for a channel. Mirrors expose the
// feed under their own path scheme.
func (i Instance) FeedURL(channelId string) string {
	if i.Mirror {
		return i.URL + "/feed/channel/" + channelId
	}
	return i.URL + "/feeds/videos.xml?channel_id=" + channelId
}

func (i Instance) WatchURL(videoId string) string {
	return i.URL + "/watch?v=" + videoId
}

// ThumbnailURL points at the platform's image host in direct mode and at the
// mirror's thumbnail proxy otherwise.
func (i Instance) ThumbnailURL(videoId string) string {
	if i.Mirror {
		return i.URL + "/vi/" + videoId + "/mqdefault.jpg"
	}
	return "https://i.ytimg.com/vi/" + videoId + "/mqdefault.jpg"
}

func (i Instance) ChannelURL(channelId string) string {
	return i.URL + "/channel/" + channelId
}
