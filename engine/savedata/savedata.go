// Package savedata reads and writes save files: JSON compressed with LZ4.
package savedata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/1siamBot/mapfog/engine/logger"
	"github.com/1siamBot/mapfog/engine/weather"
	"github.com/pierrec/lz4"
	"github.com/sirupsen/logrus"
)

const (
	FileType    = "fog_save"
	FileVersion = "1.0"
)

var (
	ErrBadType    = errors.New("not a fog save file")
	ErrBadVersion = errors.New("unsupported save version")
)

// File is one save slot
type File struct {
	Type      string    `json:"type"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	MapID   int     `json:"mapId"`
	CameraX float64 `json:"cameraX"`
	CameraY float64 `json:"cameraY"`
	Frame   uint64  `json:"frame"`

	// Fog is nil in saves written before the fog effect existed
	Fog *weather.Snapshot `json:"fog,omitempty"`
}

// New returns a stamped save file
func New(mapID int, fog *weather.Snapshot) *File {
	return &File{
		Type:      FileType,
		Version:   FileVersion,
		Timestamp: time.Now(),
		MapID:     mapID,
		Fog:       fog,
	}
}

// Encode marshals f to JSON and compresses it
func Encode(f *File) ([]byte, error) {
	jsonData, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal save: %w", err)
	}

	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(jsonData); err != nil {
		w.Close()
		return nil, fmt.Errorf("compress save: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress save: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decompresses and validates a save
func Decode(data []byte) (*File, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, lz4.NewReader(bytes.NewReader(data))); err != nil {
		return nil, fmt.Errorf("decompress save: %w", err)
	}

	var f File
	if err := json.Unmarshal(buf.Bytes(), &f); err != nil {
		return nil, fmt.Errorf("unmarshal save: %w", err)
	}
	if f.Type != FileType {
		return nil, fmt.Errorf("%w: type %q", ErrBadType, f.Type)
	}
	if f.Version != FileVersion {
		return nil, fmt.Errorf("%w: %s", ErrBadVersion, f.Version)
	}
	return &f, nil
}

// Write saves f to path
func Write(path string, f *File) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	logger.For("savedata").WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(data),
		"fog":   f.Fog != nil,
	}).Info("game saved")
	return nil
}

// Read loads a save from path
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if f.Fog == nil {
		logger.For("savedata").WithField("path", path).Info("save has no fog block")
	}
	return f, nil
}
