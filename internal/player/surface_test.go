package player

import "sync"

// Recording fakes for the host-provided capability interfaces.

type fakeImages struct {
	mu    sync.Mutex
	shown []string
}

func (s *fakeImages) ShowImage(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, url)
}

func (s *fakeImages) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shown)
}

func (s *fakeImages) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.shown) == 0 {
		return ""
	}
	return s.shown[len(s.shown)-1]
}

type fakeVideo struct {
	mu      sync.Mutex
	played  []string
	stops   int
	failing bool
}

type videoStartError struct{}

func (videoStartError) Error() string { return "codec not supported" }

func (v *fakeVideo) PlayVideo(url string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.failing {
		return videoStartError{}
	}
	v.played = append(v.played, url)
	return nil
}

func (v *fakeVideo) StopVideo() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stops++
}

func (v *fakeVideo) playCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.played)
}

type fakeVisual struct {
	mu   sync.Mutex
	outs []TransitionKind
	ins  []TransitionKind
}

func (f *fakeVisual) AnimateOut(kind TransitionKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outs = append(f.outs, kind)
}

func (f *fakeVisual) AnimateIn(kind TransitionKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ins = append(f.ins, kind)
}

type fakeSettings struct {
	mu       sync.Mutex
	deviceID string
	server   string
}

func (s *fakeSettings) DeviceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deviceID
}

func (s *fakeSettings) ServerAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server
}

func (s *fakeSettings) SetServerAddress(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.server = addr
	return nil
}
