package ml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

type decoder func(payload []byte) (Model, error)

var decoders = map[string]decoder{
	TypeDecisionTree: func(payload []byte) (Model, error) {
		model := &DecisionTree{}
		if err := model.UnmarshalJSON(payload); err != nil {
			return nil, err
		}
		return model, nil
	},
	TypeLogisticRegression: func(payload []byte) (Model, error) {
		model := &LogisticRegression{}
		if err := model.UnmarshalJSON(payload); err != nil {
			return nil, err
		}
		return model, nil
	},
}

// LoadModel reads the artifact at path. An empty modelType or "auto" takes
// the type from the artifact's "type" field; otherwise the two must agree.
func LoadModel(ctx context.Context, modelType, path string) (Model, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, err
	}

	payload, err := readLocked(ctx, path)
	if err != nil {
		return nil, err
	}

	var header struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if modelType == "" || modelType == "auto" {
		modelType = header.Type
	}
	if header.Type != "" && header.Type != modelType {
		return nil, fmt.Errorf("%w: artifact is %q, config expects %q", ErrUnsupportedModel, header.Type, modelType)
	}

	decode, ok := decoders[modelType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelType)
	}
	model, err := decode(payload)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return model, nil
}

// readLocked reads path while holding a shared lock on the model file
// itself, so a writer holding the exclusive lock (see writeLocked) is never
// observed half-written. The file is opened read-only and nothing is
// created next to it.
func readLocked(ctx context.Context, path string) ([]byte, error) {
	l := flock.New(path, flock.SetFlag(os.O_RDONLY))
	locked, err := l.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("cannot acquire model lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("cannot acquire model lock: %s", l.Path())
	}
	defer func() { _ = l.Unlock() }()
	return os.ReadFile(path)
}

// writeLocked replaces path while holding the exclusive lock on it. The new
// content is renamed into place, so readers see either the old file or the
// new one.
func writeLocked(path string, payload []byte) error {
	l := flock.New(path, flock.SetFlag(os.O_CREATE|os.O_RDONLY))
	if err := l.Lock(); err != nil {
		return fmt.Errorf("cannot acquire model lock: %w", err)
	}
	defer func() { _ = l.Unlock() }()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
