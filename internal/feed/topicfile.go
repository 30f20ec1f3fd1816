// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// TopicsFile is the on-disk representation of a topic list. Keeping
// topics in a file avoids re-typing long query sets on every run.
type TopicsFile struct {
	Topics []string `yaml:"topics"`
}

// ReadTopicsFile loads a topic list from a YAML file. Blank entries are
// dropped; a file with no usable topics is an error.
func ReadTopicsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topics file: %w", err)
	}

	var tf TopicsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing topics file: %w", err)
	}

	var topics []string
	for _, t := range tf.Topics {
		t = strings.TrimSpace(t)
		if t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("topics file %s contains no topics", path)
	}
	return topics, nil
}

// SplitTopics parses a comma-separated topic list (the env/config
// form), trimming whitespace and dropping blank entries.
func SplitTopics(s string) []string {
	var topics []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}
