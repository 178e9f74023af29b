package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"tubefeed/models"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>tubefeed</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 0 auto; padding: 1rem; }
.video { display: flex; gap: 1rem; margin-bottom: 1.5rem; }
.video img { width: 200px; height: auto; }
.video p { margin: 0.25rem 0; }
.meta { color: #555; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>Latest uploads via {{.Instance.URL}}</h1>
{{range .Videos}}<div class="video">
<a href="{{$.Instance.WatchURL .Id}}"><img src="{{$.Instance.ThumbnailURL .Id}}" alt=""></a>
<div>
<p><a href="{{$.Instance.WatchURL .Id}}">{{.Title}}</a></p>
<p class="meta">{{age .Published}} &middot; <a href="{{$.Instance.ChannelURL .ChannelId}}">{{.ChannelName}}</a></p>
</div>
</div>
{{end}}</body>
</html>
`

type pageData struct {
	Instance models.Instance
	Videos   []models.Video
}

// Page renders the aggregated video list to a single HTML document. Pure and
// deterministic for a fixed now; performs no network or disk I/O. Titles and
// channel names are uploader controlled free text and go through the
// template's contextual escaping.
func Page(instance models.Instance, videos []models.Video, now time.Time) ([]byte, error) {
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"age": func(t time.Time) string { return Age(now, t) },
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, pageData{Instance: instance, Videos: videos}); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Age formats how long ago t was relative to now. Unit names are always
// plural. Each boundary belongs to the larger unit, so exactly one hour
// renders as "1 hours ago".
func Age(now, t time.Time) string {
	secs := int64(now.Sub(t).Seconds())
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%d seconds ago", secs)
	case secs < 3600:
		return fmt.Sprintf("%d minutes ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%d hours ago", secs/3600)
	}
	days := secs / 86400
	switch {
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		return fmt.Sprintf("%d months ago", days/30)
	}
	return fmt.Sprintf("%d years ago", days/365)
}
