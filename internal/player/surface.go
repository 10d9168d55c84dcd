package player

// Capability interfaces the host UI layer provides. The core renders
// through these and never touches pixels itself.

// ImageSurface paints a still image identified by its rendering URL.
type ImageSurface interface {
	ShowImage(url string)
}

// VideoSurface starts and stops video playback. The host signals the
// end of media by calling Driver.VideoEnded; a PlayVideo error means
// playback could not start at all.
type VideoSurface interface {
	PlayVideo(url string) error
	StopVideo()
}

// Visual receives the two halves of a transition animation. Purely
// presentational; implementations that do not animate can ignore it.
type Visual interface {
	AnimateOut(kind TransitionKind)
	AnimateIn(kind TransitionKind)
}

// Settings exposes the only persisted configuration the core depends
// on. Storage format and location belong to the host.
type Settings interface {
	DeviceID() string
	ServerAddress() string
	SetServerAddress(addr string) error
}
