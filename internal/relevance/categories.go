package relevance

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBoost is the score added when an active category's confirmation
// phrase appears in a unit. It is large enough to outrank any realistic
// term-overlap score; treat it as a tunable weight, not a precise value.
const DefaultBoost = 200

// Category describes one known high-value question intent. Triggers are the
// vocabulary that activates the category when present in a question;
// Confirmations are the narrower phrases whose presence in a candidate unit
// strongly indicates it answers that kind of question.
//
// Extending the booster to a new intent means adding a Category entry (in
// code or in the external rules file) and nothing else.
type Category struct {
	Name          string   `yaml:"name"`
	Triggers      []string `yaml:"triggers"`
	Confirmations []string `yaml:"confirmations"`
	Boost         int      `yaml:"boost"`
}

// DefaultCategories returns the built-in intent table.
func DefaultCategories() []Category {
	return []Category{
		{
			Name:          "spouse",
			Triggers:      []string{"wife", "husband", "married", "spouse", "wedding", "marriage", "partner"},
			Confirmations: []string{"married to", "wife", "husband", "spouse"},
			Boost:         DefaultBoost,
		},
		{
			Name:          "wealth",
			Triggers:      []string{"net worth", "networth", "billion", "wealth", "crore", "money", "rich", "earnings", "$"},
			Confirmations: []string{"net worth", "billion", "crore", "$"},
			Boost:         DefaultBoost,
		},
		{
			Name:          "career",
			Triggers:      []string{"cricketer", "captain", "chairman", "director", "business", "occupation", "profession"},
			Confirmations: []string{"cricketer", "captain", "chairman", "director"},
			Boost:         DefaultBoost,
		},
	}
}

// LoadCategories reads an intent table from a YAML file. Each entry must
// carry a name, at least one trigger and one confirmation phrase, and a
// positive boost (zero defaults to DefaultBoost). Trigger and confirmation
// vocabulary is lowercased on load since all matching is case-insensitive.
func LoadCategories(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category rules: %w", err)
	}

	var categories []Category
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse category rules: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("category rules file %s defines no categories", path)
	}

	for i := range categories {
		c := &categories[i]
		if c.Name == "" {
			return nil, fmt.Errorf("category %d has no name", i)
		}
		if len(c.Triggers) == 0 {
			return nil, fmt.Errorf("category %q has no triggers", c.Name)
		}
		if len(c.Confirmations) == 0 {
			return nil, fmt.Errorf("category %q has no confirmation phrases", c.Name)
		}
		if c.Boost < 0 {
			return nil, fmt.Errorf("category %q has negative boost %d", c.Name, c.Boost)
		}
		if c.Boost == 0 {
			c.Boost = DefaultBoost
		}
		for j, t := range c.Triggers {
			c.Triggers[j] = strings.ToLower(t)
		}
		for j, p := range c.Confirmations {
			c.Confirmations[j] = strings.ToLower(p)
		}
	}
	return categories, nil
}

// Booster applies confirmation-phrase boosts for the categories a question
// activates. It counteracts the term scorer's bias toward raw lexical
// overlap for known high-value question types.
type Booster struct {
	active []Category
}

// NewBooster determines which categories the question activates. A category
// is active when any of its trigger words appears in the lowercased
// question.
func NewBooster(question string, table []Category) *Booster {
	q := strings.ToLower(question)
	var active []Category
	for _, cat := range table {
		for _, trigger := range cat.Triggers {
			if strings.Contains(q, trigger) {
				active = append(active, cat)
				break
			}
		}
	}
	return &Booster{active: active}
}

// Active reports whether any category was activated by the question.
func (b *Booster) Active() bool {
	return len(b.active) > 0
}

// Boost returns the total boost for a unit of text: each active category
// whose confirmation phrases appear in the text contributes its boost once.
func (b *Booster) Boost(text string) int {
	if len(b.active) == 0 {
		return 0
	}

	lower := strings.ToLower(text)
	total := 0
	for _, cat := range b.active {
		for _, phrase := range cat.Confirmations {
			if strings.Contains(lower, phrase) {
				total += cat.Boost
				break
			}
		}
	}
	return total
}
