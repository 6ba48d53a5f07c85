package scraper

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodLauncher starts Chrome through go-rod. An empty Bin lets rod find or
// download a browser; a non-empty ControlURL connects to a running one.
type RodLauncher struct {
	Bin        string
	ControlURL string
}

// Launch starts (or connects to) a browser.
func (l RodLauncher) Launch(ctx context.Context, headless bool) (Session, error) {
	var lc *launcher.Launcher
	controlURL := l.ControlURL
	if controlURL == "" {
		lc = launcher.New().
			Headless(headless).
			Set("no-sandbox").
			Set("disable-dev-shm-usage")
		if l.Bin != "" {
			lc = lc.Bin(l.Bin)
		}
		u, err := lc.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		if lc != nil {
			lc.Kill()
		}
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	return &rodSession{browser: browser, launcher: lc}, nil
}

type rodSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// Open loads req.URL in a fresh tab and returns the rendered HTML.
func (s *rodSession) Open(ctx context.Context, req Request) (string, error) {
	page, err := s.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	defer page.Close()

	nav := page
	if req.Timeout > 0 {
		nav = page.Timeout(req.Timeout)
	}
	if err := nav.Navigate(req.URL); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}
	if err := nav.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}

	if req.WaitFor != "" {
		wait := page
		if req.WaitTimeout > 0 {
			wait = page.Timeout(req.WaitTimeout)
		}
		if _, err := wait.Element(req.WaitFor); err != nil && !req.WaitOptional {
			return "", fmt.Errorf("wait for %s: %w", req.WaitFor, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read html: %w", err)
	}
	return html, nil
}

// Close shuts the browser down and, when it was launched here, cleans up
// the Chrome process and its user data dir.
func (s *rodSession) Close() error {
	err := s.browser.Close()
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
	return err
}
