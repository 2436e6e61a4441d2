package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/creativeforge/pkg/errors"
	"github.com/matzehuels/creativeforge/pkg/scene"
)

// WriteJSON encodes s as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(s scene.Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes s as YAML and writes it to w.
func WriteYAML(s scene.Scene, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Write encodes s in the given encoding.
func Write(s scene.Scene, w io.Writer, enc Encoding) error {
	switch enc {
	case EncodingJSON:
		return WriteJSON(s, w)
	case EncodingYAML:
		return WriteYAML(s, w)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown encoding %q", enc)
	}
}

// ExportFile writes s to path, choosing the encoder by extension. Missing
// parent directories are created.
func ExportFile(s scene.Scene, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	enc, err := EncodingFor(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(s, f, enc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
