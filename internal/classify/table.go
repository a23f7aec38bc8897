package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is one narrative bucket: the keywords that select it and the
// phrase fragments the assembler draws from, keyed by sentiment.
type Category struct {
	Name        string              `yaml:"name"`
	Keywords    []string            `yaml:"keywords"`
	Transitions []string            `yaml:"transitions"`
	Analysis    map[string][]string `yaml:"analysis"`
	Insights    map[string][]string `yaml:"insights"`
}

// Table is the immutable category reference data, loaded once at startup and
// shared read-only across requests. Order matters: ties break first-seen.
type Table struct {
	Categories []Category
	Fallback   string
}

type tableFile struct {
	Categories []Category `yaml:"categories"`
	Fallback   string     `yaml:"fallback"`
}

// LoadTable reads the category table from a YAML file.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open category table: %w", err)
	}
	defer f.Close()

	var tf tableFile
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&tf); err != nil {
		return nil, fmt.Errorf("decode category table: %w", err)
	}

	t := &Table{Categories: tf.Categories, Fallback: tf.Fallback}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) validate() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("category table has no categories")
	}
	names := map[string]bool{}
	for _, c := range t.Categories {
		if c.Name == "" {
			return fmt.Errorf("category with empty name")
		}
		if names[c.Name] {
			return fmt.Errorf("duplicate category %q", c.Name)
		}
		names[c.Name] = true
		if len(c.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", c.Name)
		}
	}
	if t.Fallback == "" {
		return fmt.Errorf("category table has no fallback category")
	}
	if !names[t.Fallback] {
		return fmt.Errorf("fallback category %q not defined", t.Fallback)
	}
	return nil
}

// Get returns the category by name, or the fallback entry when missing.
func (t *Table) Get(name string) Category {
	for _, c := range t.Categories {
		if c.Name == name {
			return c
		}
	}
	for _, c := range t.Categories {
		if c.Name == t.Fallback {
			return c
		}
	}
	return Category{}
}

// AllKeywords returns every keyword in table order, used by the hashtag
// composer as its topical vocabulary.
func (t *Table) AllKeywords() []string {
	var out []string
	for _, c := range t.Categories {
		out = append(out, c.Keywords...)
	}
	return out
}
