package estimate

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

var sheetSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("estimate.json", strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("estimate schema: %v", err))
	}
	return compiler.MustCompile("estimate.json")
}()

// Sheet is an estimate as written in a YAML or JSON file
type Sheet struct {
	Title   string     `json:"title,omitempty" yaml:"title,omitempty"`
	Area    float64    `json:"area,omitempty" yaml:"area,omitempty"`
	Urgency string     `json:"urgency,omitempty" yaml:"urgency,omitempty"`
	Items   []LineItem `json:"items" yaml:"items"`
	Offers  []Offer    `json:"offers,omitempty" yaml:"offers,omitempty"`
}

// DefaultSheet is the starter estimate with the illustrative contractors
func DefaultSheet() *Sheet {
	return &Sheet{
		Title:   "Смета",
		Area:    20,
		Urgency: string(UrgencyNormal),
		Items:   DefaultItems(),
		Offers:  DefaultOffers(),
	}
}

// Quote computes the quote for the sheet. Sheets without offers are priced
// against the default contractors.
func (s *Sheet) Quote() (Quote, error) {
	urgency, err := ParseUrgency(s.Urgency)
	if err != nil {
		return Quote{}, err
	}
	offers := s.Offers
	if len(offers) == 0 {
		offers = DefaultOffers()
	}
	return NewQuote(s.Items, urgency, offers), nil
}

// ParseSheet validates data against the estimate schema and decodes it.
// JSON input is accepted as well since it is valid YAML.
func ParseSheet(data []byte) (*Sheet, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing estimate: %w", err)
	}

	// yaml decodes integers as int, the validator wants JSON numbers
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("error converting estimate: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("error converting estimate: %w", err)
	}
	if err := sheetSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid estimate: %w", err)
	}

	var sheet Sheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("error decoding estimate: %w", err)
	}
	return &sheet, nil
}

// LoadSheet reads an estimate file
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSheet(data)
}

// Save writes the sheet as YAML
func (s *Sheet) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
