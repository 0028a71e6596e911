package skinning

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Animations are authored at a fixed 24 frames per second.
const FramesPerSecond = 24

// FrameToTime converts a frame number to a millisecond offset, truncating
// any fractional millisecond.
func FrameToTime(frame int) int64 {
	return int64(frame) * 1000 / FramesPerSecond
}

// TimeToFrame is the truncating inverse of FrameToTime.
func TimeToFrame(timeMs int64) int {
	return int(timeMs * FramesPerSecond / 1000)
}

// ClipDefinition names a frame range to carve out of a master animation.
type ClipDefinition struct {
	Name       string
	StartFrame int
	EndFrame   int
}

// ClipSource supplies the clip definitions text for a model.
type ClipSource interface {
	Open() (io.ReadCloser, error)
}

// FileClipSource reads clip definitions from a file on disk.
type FileClipSource string

// Open opens the underlying definitions file.
func (p FileClipSource) Open() (io.ReadCloser, error) {
	return os.Open(string(p))
}

// ParseClipDefinitions reads one definition per non-empty line in the form
//
//	"<name>" <startFrame> <endFrame>
//
// Quotes around the name are optional but required if it contains spaces.
// A malformed line fails the whole parse.
func ParseClipDefinitions(r io.Reader) ([]ClipDefinition, error) {
	var defs []ClipDefinition

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		def, err := parseClipLine(line)
		if err != nil {
			return nil, fmt.Errorf("clip definitions line %d: %w", lineNo, err)
		}
		defs = append(defs, def)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading clip definitions: %w", err)
	}

	return defs, nil
}

func parseClipLine(line string) (ClipDefinition, error) {
	var name string

	if strings.HasPrefix(line, `"`) {
		end := strings.Index(line[1:], `"`)
		if end < 0 {
			return ClipDefinition{}, fmt.Errorf("unterminated quoted clip name")
		}
		name = line[1 : 1+end]
		line = line[2+end:]
	} else {
		i := strings.IndexAny(line, " \t")
		if i < 0 {
			return ClipDefinition{}, fmt.Errorf("expected name, start frame and end frame")
		}
		name = line[:i]
		line = line[i:]
	}

	if name == "" {
		return ClipDefinition{}, fmt.Errorf("empty clip name")
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return ClipDefinition{}, fmt.Errorf("expected start frame and end frame after clip name")
	}

	start, err := strconv.Atoi(fields[0])
	if err != nil || start < 0 {
		return ClipDefinition{}, fmt.Errorf("invalid start frame %q", fields[0])
	}
	end, err := strconv.Atoi(fields[1])
	if err != nil || end < 0 {
		return ClipDefinition{}, fmt.Errorf("invalid end frame %q", fields[1])
	}

	return ClipDefinition{Name: name, StartFrame: start, EndFrame: end}, nil
}

// SplitClip carves every defined frame range out of the master clip. Each
// range is applied independently against the original master timeline, so
// overlapping definitions are allowed: that is how several named actions
// are cut from one authored track. Duplicate names overwrite, last wins.
func SplitClip(master *AnimationClip, defs []ClipDefinition) map[string]*AnimationClip {
	clips := make(map[string]*AnimationClip, len(defs))

	for _, def := range defs {
		startTime := FrameToTime(def.StartFrame)
		endTime := FrameToTime(def.EndFrame)

		var keyframes []Keyframe
		for _, kf := range master.Keyframes {
			if kf.Time < startTime || kf.Time > endTime {
				continue
			}
			keyframes = append(keyframes, Keyframe{
				Bone:      kf.Bone,
				Time:      kf.Time - startTime,
				Transform: kf.Transform,
			})
		}

		duration := endTime - startTime
		if duration < 0 {
			duration = 0
		}

		clips[def.Name] = &AnimationClip{
			Duration:  duration,
			Keyframes: keyframes,
		}
	}

	return clips
}
