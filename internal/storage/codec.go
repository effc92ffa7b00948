package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/josephgoksu/smarttask/internal/task"
	yaml "gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Codec turns the task list into slot bytes and back.
type Codec interface {
	Name() string
	Marshal(tasks []task.Task) ([]byte, error)
	Unmarshal(data []byte) ([]task.Task, error)
}

// CodecFor returns the codec for a format name; an empty name means json.
func CodecFor(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		return jsonCodec{}, nil
	case FormatYAML, "yml":
		return yamlCodec{}, nil
	case FormatTOML:
		return tomlCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported data format: %s (supported: json, yaml, toml)", format)
	}
}

// jsonCodec writes the bare array, the layout other clients of the slot expect.
type jsonCodec struct{}

func (jsonCodec) Name() string { return FormatJSON }

func (jsonCodec) Marshal(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return json.Marshal(tasks)
}

func (jsonCodec) Unmarshal(data []byte) ([]task.Task, error) {
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return tasks, nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return FormatYAML }

func (yamlCodec) Marshal(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return yaml.Marshal(tasks)
}

func (yamlCodec) Unmarshal(data []byte) ([]task.Task, error) {
	var tasks []task.Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	return tasks, nil
}

// tomlDocument wraps the list; TOML has no top-level arrays.
type tomlDocument struct {
	Tasks []task.Task `toml:"tasks"`
}

type tomlCodec struct{}

func (tomlCodec) Name() string { return FormatTOML }

func (tomlCodec) Marshal(tasks []task.Task) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(tomlDocument{Tasks: tasks}); err != nil {
		return nil, fmt.Errorf("marshal TOML: %w", err)
	}
	return buf.Bytes(), nil
}

func (tomlCodec) Unmarshal(data []byte) ([]task.Task, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal TOML: %w", err)
	}
	return doc.Tasks, nil
}
