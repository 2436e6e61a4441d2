package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/creativeforge/pkg/errors"
	"github.com/matzehuels/creativeforge/pkg/scene"
)

// Encoding identifies a scene file encoding.
type Encoding string

// Supported encodings.
const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// EncodingFor returns the encoding implied by the extension of path.
func EncodingFor(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return EncodingJSON, nil
	case ".yaml", ".yml":
		return EncodingYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported scene file %s (want .json, .yaml or .yml)", filepath.Base(path))
	}
}

// ReadJSON decodes and validates a JSON scene from r.
//
// Malformed JSON yields an INVALID_INPUT error; a well-formed document that
// breaks a scene invariant yields the INVALID_SCENE error of
// [scene.Scene.Validate]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (scene.Scene, error) {
	var s scene.Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return scene.Scene{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode scene")
	}
	return validated(s)
}

// ReadYAML decodes and validates a YAML scene from r.
func ReadYAML(r io.Reader) (scene.Scene, error) {
	var s scene.Scene
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return scene.Scene{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode scene")
	}
	return validated(s)
}

// Read decodes a scene in the given encoding.
func Read(r io.Reader, enc Encoding) (scene.Scene, error) {
	switch enc {
	case EncodingJSON:
		return ReadJSON(r)
	case EncodingYAML:
		return ReadYAML(r)
	default:
		return scene.Scene{}, errors.New(errors.ErrCodeUnsupported, "unknown encoding %q", enc)
	}
}

// ImportFile reads the scene file at path, choosing the decoder by
// extension.
func ImportFile(path string) (scene.Scene, error) {
	enc, err := EncodingFor(path)
	if err != nil {
		return scene.Scene{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return scene.Scene{}, errors.New(errors.ErrCodeNotFound, "scene file %s not found", path)
	}
	if err != nil {
		return scene.Scene{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f, enc)
	if err != nil {
		return scene.Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func validated(s scene.Scene) (scene.Scene, error) {
	if err := s.Validate(); err != nil {
		return scene.Scene{}, err
	}
	return s, nil
}
