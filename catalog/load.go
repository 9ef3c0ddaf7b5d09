package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the layout of posts.yaml.
type File struct {
	Posts []Post `yaml:"posts"`
}

// LoadFile reads the post list from a posts.yaml file.
func LoadFile(path string) ([]Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read posts file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a posts.yaml document.
func Parse(data []byte) ([]Post, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return f.Posts, nil
}
