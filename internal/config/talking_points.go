package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TalkingPoint is an optional editorial note shown alongside the view.
type TalkingPoint struct {
	Label string `yaml:"label" json:"label"`
	Text  string `yaml:"text" json:"text"`
}

type talkingPointFile struct {
	Item *TalkingPoint `yaml:"item"`
}

// LoadTalkingPoint reads the talking point file at path. JSON and YAML are
// both accepted. An empty path or a missing file yields nil and no error.
func LoadTalkingPoint(path string) (*TalkingPoint, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read talking points: %w", err)
	}
	return ParseTalkingPoint(raw)
}

// ParseTalkingPoint decodes a talking point document. A document without an
// item, or whose item has no text, yields nil.
func ParseTalkingPoint(raw []byte) (*TalkingPoint, error) {
	var doc talkingPointFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parse talking points: %w", err)
	}
	if doc.Item == nil {
		return nil, nil
	}
	tp := TalkingPoint{
		Label: strings.TrimSpace(doc.Item.Label),
		Text:  strings.TrimSpace(doc.Item.Text),
	}
	if tp.Text == "" {
		return nil, nil
	}
	return &tp, nil
}
