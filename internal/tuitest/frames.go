package tuitest

import (
	"regexp"
	"strings"
)

// Frame is one screen render with and without escape sequences.
type Frame struct {
	Index int
	ANSI  string
	Plain string
}

var (
	// bubbletea's standard renderer erases the screen between frames
	eraseDisplay = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	csiSequence  = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	oscSequence  = regexp.MustCompile(`\x1b\][^\x07]*(\x07|\x1b\\)`)
	shiftChars   = strings.NewReplacer("\x0f", "", "\x0e", "")
)

func parseFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, segment := range eraseDisplay.Split(stream, -1) {
		segment = strings.TrimPrefix(strings.Trim(segment, "\x00"), "\x1b[H")
		plain := stripANSI(segment)
		if strings.TrimSpace(plain) == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), ANSI: segment, Plain: normalizeLines(plain)})
	}
	if len(frames) == 0 && stream != "" {
		frames = append(frames, Frame{ANSI: stream, Plain: normalizeLines(stripANSI(stream))})
	}
	return frames
}

// FinalFrame returns the last captured frame, or false when nothing rendered.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// FrameContaining returns the last frame whose plain text contains text.
func (r *Recording) FrameContaining(text string) (Frame, bool) {
	if r == nil {
		return Frame{}, false
	}
	for i := len(r.Frames) - 1; i >= 0; i-- {
		if strings.Contains(r.Frames[i].Plain, text) {
			return r.Frames[i], true
		}
	}
	return Frame{}, false
}

func stripANSI(s string) string {
	s = oscSequence.ReplaceAllString(s, "")
	s = csiSequence.ReplaceAllString(s, "")
	return shiftChars.Replace(s)
}

func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
