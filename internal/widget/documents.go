package widget

import (
	"fmt"
	"net/url"

	"github.com/tsdcosta/refuge-player/internal/source"
)

// documentFor builds the minimal widget document for a platform. The
// document wires the platform's player API to the bridge protocol: inbound
// events go through window.__emitWidgetEvent, outbound control through the
// __widgetPlay/__widgetPause/__widgetSeek globals.
func documentFor(platform source.Kind, trackURL string) (string, error) {
	switch platform {
	case source.KindSoundcloud:
		return soundcloudDocument(trackURL), nil
	case source.KindMixcloud:
		return mixcloudDocument(trackURL), nil
	default:
		return "", fmt.Errorf("no widget document for platform %s", platform)
	}
}

func soundcloudDocument(trackURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
<iframe id="player" width="300" height="80" allow="autoplay"
  src="https://w.soundcloud.com/player/?url=%s&auto_play=true&hide_related=true&show_comments=false"></iframe>
<script src="https://w.soundcloud.com/player/api.js"></script>
<script>
var widget = SC.Widget(document.getElementById('player'));
function send(ev) {
  if (window.__emitWidgetEvent) { __emitWidgetEvent(JSON.stringify(ev)); }
}
widget.bind(SC.Widget.Events.READY, function() {
  widget.getDuration(function(d) { send({event: 'duration', duration: d}); });
});
widget.bind(SC.Widget.Events.PLAY, function() { send({event: 'play'}); });
widget.bind(SC.Widget.Events.PAUSE, function() { send({event: 'pause'}); });
widget.bind(SC.Widget.Events.FINISH, function() { send({event: 'finish'}); });
widget.bind(SC.Widget.Events.ERROR, function(e) { send({event: 'error', data: String(e)}); });
widget.bind(SC.Widget.Events.PLAY_PROGRESS, function(p) {
  send({event: 'progress', position: p.currentPosition});
});
function __widgetPlay() { widget.play(); }
function __widgetPause() { widget.pause(); }
function __widgetSeek(ms) { widget.seekTo(ms); }
</script>
</body>
</html>`, url.QueryEscape(trackURL))
}

func mixcloudDocument(showURL string) string {
	feed := feedPath(showURL)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
<iframe id="player" width="300" height="60" allow="autoplay"
  src="https://www.mixcloud.com/widget/iframe/?feed=%s&autoplay=1&hide_cover=1&mini=1"></iframe>
<script src="https://widget.mixcloud.com/media/js/widgetApi.js"></script>
<script>
var widget = Mixcloud.PlayerWidget(document.getElementById('player'));
function send(ev) {
  if (window.__emitWidgetEvent) { __emitWidgetEvent(JSON.stringify(ev)); }
}
widget.ready.then(function() {
  widget.getDuration().then(function(d) { send({event: 'duration', duration: d}); });
  widget.events.play.on(function() { send({event: 'play'}); });
  widget.events.pause.on(function() { send({event: 'pause'}); });
  widget.events.ended.on(function() { send({event: 'finish'}); });
  widget.events.error.on(function(e) { send({event: 'error', data: String(e)}); });
  widget.events.progress.on(function(position, duration) {
    send({event: 'progress', position: position, duration: duration});
  });
});
function __widgetPlay() { widget.play(); }
function __widgetPause() { widget.pause(); }
function __widgetSeek(s) { widget.seek(s); }
</script>
</body>
</html>`, url.QueryEscape(feed))
}

// feedPath reduces a Mixcloud show URL to the path form the widget expects.
func feedPath(showURL string) string {
	u, err := url.Parse(showURL)
	if err != nil || u.Path == "" {
		return showURL
	}
	return u.Path
}
