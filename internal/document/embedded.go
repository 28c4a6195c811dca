package document

import (
	"embed"
	"fmt"

	"github.com/nao1215/factcheck/internal/model"
)

//go:embed data/*.json
var embedded embed.FS

// Names of the embedded demonstration documents.
const (
	// GovDocument is the trusted government reference.
	GovDocument = "data/example.json"

	// FalseWebsiteDocument is a website misquoting the reference.
	FalseWebsiteDocument = "data/falsewebsite.json"

	// FacebookPostDocument is a social media post quoting the reference.
	FacebookPostDocument = "data/facebookpost.json"
)

// Demo is the embedded demonstration set.
type Demo struct {
	// References holds the trusted documents.
	References []model.Information

	// Subjects holds the documents to check, in output order.
	Subjects []model.Information
}

// LoadEmbedded decodes one of the embedded documents.
func LoadEmbedded(name string) (*model.Information, error) {
	data, err := embedded.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded document %s: %w", name, err)
	}

	info, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return info, nil
}

// LoadDemo decodes the three embedded documents. The government document is
// the only reference; the false website and the facebook post are checked
// against it in that order.
func LoadDemo() (*Demo, error) {
	gov, err := LoadEmbedded(GovDocument)
	if err != nil {
		return nil, err
	}
	falseWebsite, err := LoadEmbedded(FalseWebsiteDocument)
	if err != nil {
		return nil, err
	}
	facebook, err := LoadEmbedded(FacebookPostDocument)
	if err != nil {
		return nil, err
	}

	return &Demo{
		References: []model.Information{*gov},
		Subjects:   []model.Information{*falseWebsite, *facebook},
	}, nil
}
