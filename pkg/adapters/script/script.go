// Package script replays declarative intent scripts against a diary.
//
// A script is a list of steps, each naming one of the three intents:
//
//	- op: create
//	  emotionId: 1
//	  content: Hello
//	- op: update
//	  id: 1
//	  emotionId: 3
//	  content: 수정된 일기입니다.
//	- op: delete
//	  id: 1
//
// Steps are submitted through core.Operations only, so a script can do
// nothing a UI consumer could not.
package script

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/diary/pkg/core"
)

var (
	ErrUnknownOp         = errors.New("unknown op")
	ErrMissingID         = errors.New("step requires an id")
	ErrUnsupportedFormat = errors.New("unsupported script format")
)

// Op names an intent.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Step is one scripted intent. CreatedDate is in epoch milliseconds; zero
// means "at the time the step runs".
type Step struct {
	Op          Op     `json:"op" yaml:"op"`
	ID          any    `json:"id,omitempty" yaml:"id,omitempty"`
	CreatedDate int64  `json:"createdDate,omitempty" yaml:"createdDate,omitempty"`
	EmotionID   int    `json:"emotionId,omitempty" yaml:"emotionId,omitempty"`
	Content     string `json:"content,omitempty" yaml:"content,omitempty"`
}

// Load reads a script file. The format is chosen by extension.
func Load(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	steps, err := Parse(bytes.NewReader(data), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return steps, nil
}

// Parse decodes and validates a script.
func Parse(r io.Reader, ext string) ([]Step, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var steps []Step
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &steps); err != nil {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&steps); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	for i := range steps {
		if err := steps[i].validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return steps, nil
}

func (s *Step) validate() error {
	s.Op = Op(strings.ToLower(string(s.Op)))
	switch s.Op {
	case OpCreate:
		return nil
	case OpUpdate, OpDelete:
		if s.ID == nil || core.IDOf(s.ID) == "" {
			return ErrMissingID
		}
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, s.Op)
	}
}

// Run submits steps to ops in order. It stops early, returning ctx.Err(),
// when ctx is cancelled between steps.
func Run(ctx context.Context, ops core.Operations, steps []Step, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		created := s.CreatedDate
		if created == 0 {
			created = now().UnixMilli()
		}

		switch s.Op {
		case OpCreate:
			ops.Create(created, s.EmotionID, s.Content)
		case OpUpdate:
			ops.Update(core.IDOf(s.ID), created, s.EmotionID, s.Content)
		case OpDelete:
			ops.Delete(core.IDOf(s.ID))
		default:
			return fmt.Errorf("%w %q", ErrUnknownOp, s.Op)
		}
	}
	return nil
}
