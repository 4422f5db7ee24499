package widget

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
	"github.com/ysmood/gson"
)

// Host owns the shared headless browser that backs all widget surfaces.
// One browser is launched per process; each widget gets its own page.
type Host struct {
	launcher     *launcher.Launcher
	browser      *rod.Browser
	probeTimeout time.Duration
	log          zerolog.Logger
}

// NewHost launches the browser. probeTimeout bounds the Alive reachability check.
func NewHost(headless bool, probeTimeout time.Duration, log zerolog.Logger) (*Host, error) {
	l := launcher.New().Headless(headless)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	return &Host{
		launcher:     l,
		browser:      browser,
		probeTimeout: probeTimeout,
		log:          log,
	}, nil
}

// Factory returns a SurfaceFactory creating hidden pages on the shared browser.
func (h *Host) Factory() SurfaceFactory {
	return func(emit func(Event)) (Surface, error) {
		page, err := h.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
		if err != nil {
			return nil, fmt.Errorf("create page: %w", err)
		}

		_, err = page.Expose("__emitWidgetEvent", func(v gson.JSON) (interface{}, error) {
			var ev Event
			if err := json.Unmarshal([]byte(v.Str()), &ev); err != nil {
				h.log.Warn().Err(err).Str("payload", v.Str()).Msg("malformed widget event")
				return nil, nil
			}
			emit(ev)
			return nil, nil
		})
		if err != nil {
			page.Close()
			return nil, fmt.Errorf("expose event binding: %w", err)
		}

		return &rodSurface{page: page, probeTimeout: h.probeTimeout}, nil
	}
}

// Close shuts the browser down.
func (h *Host) Close() {
	h.browser.Close()
	h.launcher.Kill()
}

// rodSurface is a Surface backed by a rod page.
type rodSurface struct {
	page         *rod.Page
	probeTimeout time.Duration
}

func (s *rodSurface) Load(html string) error {
	return s.page.SetDocumentContent(html)
}

func (s *rodSurface) Eval(js string) (string, error) {
	obj, err := s.page.Eval(js)
	if err != nil {
		return "", err
	}
	return obj.Value.String(), nil
}

func (s *rodSurface) Alive() bool {
	_, err := s.page.Timeout(s.probeTimeout).Eval("() => true")
	return err == nil
}

func (s *rodSurface) Close() error {
	return s.page.Close()
}
