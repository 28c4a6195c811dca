package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/factcheck/internal/model"
)

// ErrInvalidDocument is returned when a document is malformed or does not
// match the expected schema.
var ErrInvalidDocument = errors.New("invalid document")

// wireSource, wireStatistic and wireInformation mirror the model types with
// pointer fields so that missing fields can be told apart from zero values.
type wireSource struct {
	Location *string `yaml:"location"`
	Trusted  *bool   `yaml:"trusted"`
}

type wireStatistic struct {
	Sources     *[]wireSource `yaml:"sources"`
	Description *string       `yaml:"description"`
	Value       *int32        `yaml:"value"`
}

type wireInformation struct {
	WebsiteName   *string          `yaml:"website_name"`
	IsTrusted     *bool            `yaml:"is_trusted"`
	WebsiteTopics *[]string        `yaml:"website_topics"`
	Statistics    *[]wireStatistic `yaml:"statistics"`
}

// Parse decodes a JSON document.
//
// Keys must match exactly: {"WEBSITE_NAME": ...} does not provide
// website_name. Unknown keys are ignored and null counts as missing.
func Parse(data []byte) (*model.Information, error) {
	var (
		w          wireInformation
		statistics []json.RawMessage
	)
	if err := decodeFields(data, "",
		field{"website_name", &w.WebsiteName},
		field{"is_trusted", &w.IsTrusted},
		field{"website_topics", &w.WebsiteTopics},
		field{"statistics", &statistics},
	); err != nil {
		return nil, err
	}

	stats := make([]wireStatistic, len(statistics))
	for i, raw := range statistics {
		path := fmt.Sprintf("statistics[%d]", i)

		var sources []json.RawMessage
		if err := decodeFields(raw, path,
			field{"sources", &sources},
			field{"description", &stats[i].Description},
			field{"value", &stats[i].Value},
		); err != nil {
			return nil, err
		}

		wires := make([]wireSource, len(sources))
		for j, rawSource := range sources {
			if err := decodeFields(rawSource, fmt.Sprintf("%s.sources[%d]", path, j),
				field{"location", &wires[j].Location},
				field{"trusted", &wires[j].Trusted},
			); err != nil {
				return nil, err
			}
		}
		stats[i].Sources = &wires
	}
	w.Statistics = &stats

	return w.toModel()
}

// field is one required JSON object key and the pointer it decodes into.
type field struct {
	name string
	dst  any
}

// decodeFields decodes the named keys of the JSON object raw, matching key
// names exactly. path locates the object in error messages.
func decodeFields(raw []byte, path string, fields ...field) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		if path == "" {
			return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}

	for _, f := range fields {
		name := f.name
		if path != "" {
			name = path + "." + f.name
		}

		value, ok := obj[f.name]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return missingField(name)
		}
		if err := json.Unmarshal(value, f.dst); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidDocument, name, err)
		}
	}
	return nil
}

// ParseYAML decodes a YAML document with the same schema as Parse.
func ParseYAML(data []byte) (*model.Information, error) {
	var w wireInformation
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return w.toModel()
}

// LoadFile reads and decodes a document file. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON.
func LoadFile(path string) (*model.Information, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided document path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	var info *model.Information
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		info, err = ParseYAML(data)
	default:
		info, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// LoadFiles loads every path in order and stops at the first error.
func LoadFiles(paths []string) ([]model.Information, error) {
	docs := make([]model.Information, 0, len(paths))
	for _, path := range paths {
		info, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *info)
	}
	return docs, nil
}

func missingField(path string) error {
	return fmt.Errorf("%w: missing field %q", ErrInvalidDocument, path)
}

func (w wireInformation) toModel() (*model.Information, error) {
	switch {
	case w.WebsiteName == nil:
		return nil, missingField("website_name")
	case w.IsTrusted == nil:
		return nil, missingField("is_trusted")
	case w.WebsiteTopics == nil:
		return nil, missingField("website_topics")
	case w.Statistics == nil:
		return nil, missingField("statistics")
	}

	info := &model.Information{
		WebsiteName:   *w.WebsiteName,
		IsTrusted:     *w.IsTrusted,
		WebsiteTopics: append([]string{}, (*w.WebsiteTopics)...),
		Statistics:    make([]model.Statistic, 0, len(*w.Statistics)),
	}

	for i, ws := range *w.Statistics {
		stat, err := ws.toModel(fmt.Sprintf("statistics[%d]", i))
		if err != nil {
			return nil, err
		}
		info.Statistics = append(info.Statistics, stat)
	}

	return info, nil
}

func (w wireStatistic) toModel(path string) (model.Statistic, error) {
	switch {
	case w.Sources == nil:
		return model.Statistic{}, missingField(path + ".sources")
	case w.Description == nil:
		return model.Statistic{}, missingField(path + ".description")
	case w.Value == nil:
		return model.Statistic{}, missingField(path + ".value")
	}

	stat := model.Statistic{
		Description: *w.Description,
		Value:       *w.Value,
		Sources:     make([]model.Source, 0, len(*w.Sources)),
	}

	for i, src := range *w.Sources {
		srcPath := fmt.Sprintf("%s.sources[%d]", path, i)
		switch {
		case src.Location == nil:
			return model.Statistic{}, missingField(srcPath + ".location")
		case src.Trusted == nil:
			return model.Statistic{}, missingField(srcPath + ".trusted")
		}
		stat.Sources = append(stat.Sources, model.Source{
			Location: *src.Location,
			Trusted:  *src.Trusted,
		})
	}

	return stat, nil
}
