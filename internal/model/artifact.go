package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/abhisek/tbscreen/internal/features"
	"github.com/abhisek/tbscreen/internal/validate"
)

// EncodingVersion is the version of the categorical encoding and feature
// order produced by this build. Artifacts must share its major version.
const EncodingVersion = "v1.0.0"

// Artifact kinds.
const (
	KindLogistic = "logistic"
	KindTree     = "tree"
)

// Artifact is the on-disk form of a trained classifier.
type Artifact struct {
	Name            string         `json:"name"`
	Version         string         `json:"version"`
	EncodingVersion string         `json:"encoding_version"`
	Dimension       int            `json:"dimension"`
	Kind            string         `json:"kind"`
	Logistic        *LogisticModel `json:"logistic,omitempty"`
	Tree            *TreeModel     `json:"tree,omitempty"`
}

// Info summarises an artifact for integrity checks.
type Info struct {
	Path            string `json:"path"`
	Name            string `json:"name"`
	Version         string `json:"version"`
	EncodingVersion string `json:"encoding_version"`
	Kind            string `json:"kind"`
	Dimension       int    `json:"dimension"`
	Classes         int    `json:"classes"`
	SHA256          string `json:"sha256"`
}

// ParseArtifact validates raw against ArtifactSchema and checks that the
// artifact matches this build's encoding.
func ParseArtifact(raw []byte) (*Artifact, error) {
	if err := validate.Document(ArtifactSchema, raw); err != nil {
		return nil, err
	}

	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	if a.Dimension != features.Dimension {
		return nil, fmt.Errorf("%w: dimension %d, want %d", ErrIncompatible, a.Dimension, features.Dimension)
	}
	if err := checkEncoding(a.EncodingVersion); err != nil {
		return nil, err
	}

	switch a.Kind {
	case KindLogistic:
		if a.Logistic == nil {
			return nil, fmt.Errorf("%w: kind %q without logistic parameters", ErrIncompatible, a.Kind)
		}
		if err := a.Logistic.check(); err != nil {
			return nil, err
		}
	case KindTree:
		if a.Tree == nil {
			return nil, fmt.Errorf("%w: kind %q without tree nodes", ErrIncompatible, a.Kind)
		}
		if err := a.Tree.check(); err != nil {
			return nil, err
		}
	}
	return &a, nil
}

func checkEncoding(v string) error {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: encoding version %q is not semver", ErrIncompatible, v)
	}
	if semver.Major(v) != semver.Major(EncodingVersion) {
		return fmt.Errorf("%w: encoding %s, this build encodes %s", ErrIncompatible, v, EncodingVersion)
	}
	return nil
}

// ID returns "name@version".
func (a *Artifact) ID() string {
	return a.Name + "@" + a.Version
}

// Classes returns the number of classes the artifact can emit.
func (a *Artifact) Classes() int {
	switch {
	case a.Logistic != nil:
		return len(a.Logistic.Intercepts)
	case a.Tree != nil:
		return a.Tree.classes()
	default:
		return 0
	}
}

// Classifier returns the classifier described by the artifact.
func (a *Artifact) Classifier() Classifier {
	switch a.Kind {
	case KindTree:
		return &treeClassifier{id: a.ID(), tree: a.Tree}
	default:
		return &logisticClassifier{id: a.ID(), model: a.Logistic}
	}
}

// LoadFile reads and parses the artifact at path. Every failure is an
// *UnavailableError.
func LoadFile(path string) (Classifier, error) {
	a, _, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	return a.Classifier(), nil
}

// Inspect loads the artifact at path and reports its metadata and checksum.
func Inspect(path string) (*Info, error) {
	a, raw, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(raw)
	return &Info{
		Path:            path,
		Name:            a.Name,
		Version:         a.Version,
		EncodingVersion: a.EncodingVersion,
		Kind:            a.Kind,
		Dimension:       a.Dimension,
		Classes:         a.Classes(),
		SHA256:          hex.EncodeToString(sum[:]),
	}, nil
}

func readArtifact(path string) (*Artifact, []byte, error) {
	if path == "" {
		return nil, nil, &UnavailableError{Source: "file", Err: ErrNotConfigured}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &UnavailableError{Source: path, Err: err}
	}
	a, err := ParseArtifact(raw)
	if err != nil {
		return nil, nil, &UnavailableError{Source: path, Err: err}
	}
	return a, raw, nil
}
