// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

// Package feed discovers the cameras managed by the local Motion service.
//
// The package is not configured by the user: it learns the camera set, the
// console and stream ports, and the recording target directory from Motion's
// own configuration files, and re-reads them periodically to pick up changes.
package feed

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/recwarden/internal/logging"
)

const (
	defaultControlPort = "8080"
	defaultStreamPort  = "8081"
)

// Camera is one stream advertised by the local Motion service.
type Camera struct {
	ID   string
	Name string
	URL  string
}

// Feed tracks the camera set declared in a Motion configuration file.
// All methods are safe for concurrent use.
type Feed struct {
	mu             sync.Mutex
	confPath       string
	rescanInterval time.Duration
	host           string

	controlPort string
	streamPort  string
	targetDir   string
	cameras     []Camera

	markerSec  int64
	lastLoad   time.Time
	onRootFunc func(string)

	now func() time.Time
}

// New returns a Feed reading from the given Motion configuration file.
// The host name is used to build stream URLs. onRoot, when non-nil, is
// invoked with the recording target directory whenever a configuration
// load discovers or changes it.
func New(confPath, host string, rescanInterval time.Duration, onRoot func(string)) *Feed {
	return &Feed{
		confPath:       confPath,
		rescanInterval: rescanInterval,
		host:           host,
		onRootFunc:     onRoot,
		now:            time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (f *Feed) SetClock(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// Load reads the Motion configuration immediately, regardless of the
// rescan interval. The first load at startup goes through here.
func (f *Feed) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadLocked()
}

// Tick re-reads the configuration when the rescan interval has elapsed
// since the previous load. Called from the background maintenance loop.
func (f *Feed) Tick() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.now().Sub(f.lastLoad) < f.rescanInterval {
		return
	}
	if err := f.loadLocked(); err != nil {
		logging.Warn().Err(err).Str("path", f.confPath).Msg("Motion configuration rescan failed")
	}
}

// Feeds returns the stream URL of each known camera, keyed by camera id.
func (f *Feed) Feeds() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.cameras))
	for _, cam := range f.cameras {
		out[cam.ID] = cam.URL
	}
	return out
}

// Cameras returns the known cameras ordered by id.
func (f *Feed) Cameras() []Camera {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Camera, len(f.cameras))
	copy(out, f.cameras)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Console returns the host:port address of Motion's web control interface.
func (f *Feed) Console() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	port := f.controlPort
	if port == "" {
		port = defaultControlPort
	}
	return f.host + ":" + port
}

// TargetDir returns the recording directory declared by Motion, or ""
// when the configuration does not declare one.
func (f *Feed) TargetDir() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.targetDir
}

// Updated returns the feed change marker in milliseconds. The marker
// advances whenever a configuration load changes the camera set, the
// ports, or the target directory. It initializes lazily so that a
// client polling before the first change still observes a value.
func (f *Feed) Updated() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.markerSec == 0 {
		f.markerSec = f.now().Unix()
	}
	return f.markerSec * 1000
}

func (f *Feed) touchLocked() {
	if sec := f.now().Unix(); sec > f.markerSec {
		f.markerSec = sec
	}
}

type parsedConf struct {
	controlPort string
	streamPort  string
	targetDir   string
	cameras     []Camera
}

func (f *Feed) loadLocked() error {
	f.lastLoad = f.now()

	parsed, err := f.parseConfiguration()
	if err != nil {
		return err
	}
	if parsed.controlPort == "" {
		parsed.controlPort = defaultControlPort
	}
	if parsed.streamPort == "" {
		parsed.streamPort = defaultStreamPort
	}

	changed := parsed.controlPort != f.controlPort ||
		parsed.streamPort != f.streamPort ||
		parsed.targetDir != f.targetDir ||
		!sameCameras(parsed.cameras, f.cameras)
	rootChanged := parsed.targetDir != f.targetDir && parsed.targetDir != ""

	f.controlPort = parsed.controlPort
	f.streamPort = parsed.streamPort
	f.targetDir = parsed.targetDir
	f.cameras = parsed.cameras

	if changed {
		f.touchLocked()
		logging.Info().
			Str("path", f.confPath).
			Int("cameras", len(f.cameras)).
			Str("target_dir", f.targetDir).
			Msg("Motion configuration loaded")
	}
	if rootChanged && f.onRootFunc != nil {
		f.onRootFunc(parsed.targetDir)
	}
	return nil
}

func sameCameras(a, b []Camera) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// parseConfiguration reads the main Motion configuration file. Each
// "camera" directive names a per-camera file read in turn; the per-camera
// files carry the camera id and name.
func (f *Feed) parseConfiguration() (parsedConf, error) {
	var parsed parsedConf

	file, err := os.Open(f.confPath)
	if err != nil {
		return parsed, fmt.Errorf("opening motion configuration: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line, ok := significantLine(scanner.Text())
		if !ok {
			continue
		}
		if value, ok := directiveValue(line, "camera"); ok {
			if cam, ok := f.readCamera(f.resolvePath(value), parsed.streamPort); ok {
				parsed.cameras = append(parsed.cameras, cam)
			}
			continue
		}
		if value, ok := directiveValue(line, "webcontrol_port"); ok {
			parsed.controlPort = value
			continue
		}
		if value, ok := directiveValue(line, "stream_port"); ok {
			parsed.streamPort = value
			continue
		}
		if value, ok := directiveValue(line, "target_dir"); ok {
			parsed.targetDir = value
		}
	}
	if err := scanner.Err(); err != nil {
		return parsed, fmt.Errorf("reading motion configuration: %w", err)
	}

	// Camera files may appear before the stream_port directive; rebuild
	// the URLs once the final port is known.
	port := parsed.streamPort
	if port == "" {
		port = defaultStreamPort
	}
	for i := range parsed.cameras {
		parsed.cameras[i].URL = f.streamURL(port, parsed.cameras[i].ID)
	}
	return parsed, nil
}

// readCamera parses a per-camera configuration file. Files missing the
// id or the name are ignored.
func (f *Feed) readCamera(path, streamPort string) (Camera, bool) {
	file, err := os.Open(path)
	if err != nil {
		logging.Debug().Err(err).Str("path", path).Msg("Camera configuration skipped")
		return Camera{}, false
	}
	defer file.Close()

	var cam Camera
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line, ok := significantLine(scanner.Text())
		if !ok {
			continue
		}
		if value, ok := directiveValue(line, "camera_id"); ok {
			cam.ID = value
			continue
		}
		if value, ok := directiveValue(line, "camera_name"); ok {
			cam.Name = value
		}
	}
	if cam.ID == "" || cam.Name == "" {
		return Camera{}, false
	}
	cam.URL = f.streamURL(streamPort, cam.ID)
	return cam, true
}

// resolvePath interprets relative camera file paths against the
// directory holding the main configuration file.
func (f *Feed) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(f.confPath), path)
}

func (f *Feed) streamURL(port, id string) string {
	if port == "" {
		port = defaultStreamPort
	}
	return fmt.Sprintf("http://%s:%s/%s/stream", f.host, port, id)
}

// significantLine trims leading whitespace and filters out blank lines
// and comments ('#' or ';').
func significantLine(raw string) (string, bool) {
	line := strings.TrimLeft(raw, " \t")
	if line == "" || line[0] == '#' || line[0] == ';' {
		return "", false
	}
	return line, true
}

// directiveValue matches "name value" lines: the directive name followed
// by at least one blank, then the value running to the end of the line.
func directiveValue(line, name string) (string, bool) {
	if !strings.HasPrefix(line, name) {
		return "", false
	}
	rest := line[len(name):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	value := strings.TrimSpace(rest)
	if value == "" {
		return "", false
	}
	return value, true
}
