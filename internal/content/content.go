// Package content holds the curated portfolio copy: profile, projects,
// skill graph, work log and command-palette shortcuts.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDocument []byte

var (
	// ErrInvalidContent wraps every validation failure.
	ErrInvalidContent = errors.New("invalid content")
	// ErrNotFound is returned by lookups for an unknown id or index.
	ErrNotFound = errors.New("not found")
)

// Skill categories.
const (
	CategoryLanguages = "languages"
	CategoryBackend   = "backend"
	CategoryFrontend  = "frontend"
	CategoryTools     = "tools"
)

// Media kinds shown in the project lightbox.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

type Document struct {
	Profile  Profile       `yaml:"profile"  json:"profile"`
	Palette  []PaletteItem `yaml:"palette"  json:"palette"`
	Projects []Project     `yaml:"projects" json:"projects"`
	Skills   Graph         `yaml:"skills"   json:"skills"`
	Log      []LogEntry    `yaml:"log"      json:"log"`
}

type Profile struct {
	Name     string   `yaml:"name"      json:"name"`
	Role     string   `yaml:"role"      json:"role"`
	Prompt   string   `yaml:"prompt"    json:"prompt"`
	Headline []string `yaml:"headline"  json:"headline"`
	BootLine string   `yaml:"boot_line" json:"boot_line"`
}

// IdentityLine is the second hero line, e.g.
// "User detected: Jane Doe | Backend Developer".
func (p Profile) IdentityLine() string {
	return "User detected: " + p.Name + " | " + p.Role
}

type PaletteItem struct {
	ID    string `yaml:"id"    json:"id"`
	Label string `yaml:"label" json:"label"`
	Sub   string `yaml:"sub"   json:"sub"`
	Icon  string `yaml:"icon"  json:"icon"`
}

type Project struct {
	ID          string   `yaml:"id"          json:"id"`
	Title       string   `yaml:"title"       json:"title"`
	Type        string   `yaml:"type"        json:"type"`
	Icon        string   `yaml:"icon"        json:"icon"`
	Description string   `yaml:"description" json:"description"`
	Tech        []string `yaml:"tech"        json:"tech"`
	GitHub      string   `yaml:"github"      json:"github,omitempty"`
	Demo        string   `yaml:"demo"        json:"demo,omitempty"`
	Media       []Media  `yaml:"media"       json:"media,omitempty"`
}

type Media struct {
	Kind    string `yaml:"kind"    json:"kind"`
	URL     string `yaml:"url"     json:"url"`
	Caption string `yaml:"caption" json:"caption"`
}

type Graph struct {
	Nodes []Node `yaml:"nodes" json:"nodes"`
	Links []Link `yaml:"links" json:"links"`
}

// Node is one skill plotted in scene space: x in [-5,5], y in [-3,3],
// z in [-2,2].
type Node struct {
	ID       string  `yaml:"id"       json:"id"`
	X        float64 `yaml:"x"        json:"x"`
	Y        float64 `yaml:"y"        json:"y"`
	Z        float64 `yaml:"z"        json:"z"`
	Label    string  `yaml:"label"    json:"label"`
	Category string  `yaml:"category" json:"category"`
}

type Link struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

type LogEntry struct {
	Date    string   `yaml:"date"    json:"date"`
	Title   string   `yaml:"title"   json:"title"`
	Content string   `yaml:"content" json:"content"`
	Tags    []string `yaml:"tags"    json:"tags"`
}

// Default returns the document compiled into the binary.
func Default() (*Document, error) {
	return Parse(defaultDocument)
}

// Load reads and validates a document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML document and validates it. Unknown keys are
// rejected so typos in hand-edited content surface at load time.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidContent, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks ids are unique, every link endpoint exists, and
// categories and media kinds are known.
func (d *Document) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if d.Profile.Name == "" {
		addf("profile.name is empty")
	}
	if d.Profile.BootLine == "" {
		addf("profile.boot_line is empty")
	}

	seen := make(map[string]bool)
	for i, item := range d.Palette {
		if item.ID == "" || item.Label == "" {
			addf("palette[%d]: id and label are required", i)
		}
		if seen[item.ID] {
			addf("palette[%d]: duplicate id %q", i, item.ID)
		}
		seen[item.ID] = true
	}

	seen = make(map[string]bool)
	for i, p := range d.Projects {
		if p.ID == "" || p.Title == "" {
			addf("projects[%d]: id and title are required", i)
		}
		if seen[p.ID] {
			addf("projects[%d]: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
		for j, m := range p.Media {
			if m.Kind != MediaImage && m.Kind != MediaVideo {
				addf("projects[%d].media[%d]: unknown kind %q", i, j, m.Kind)
			}
			if m.URL == "" {
				addf("projects[%d].media[%d]: url is empty", i, j)
			}
		}
	}

	nodes := make(map[string]bool)
	for i, n := range d.Skills.Nodes {
		if n.ID == "" {
			addf("skills.nodes[%d]: id is empty", i)
		}
		if nodes[n.ID] {
			addf("skills.nodes[%d]: duplicate id %q", i, n.ID)
		}
		nodes[n.ID] = true
		switch n.Category {
		case CategoryLanguages, CategoryBackend, CategoryFrontend, CategoryTools:
		default:
			addf("skills.nodes[%d]: unknown category %q", i, n.Category)
		}
	}
	for i, l := range d.Skills.Links {
		if !nodes[l.Source] {
			addf("skills.links[%d]: unknown source %q", i, l.Source)
		}
		if !nodes[l.Target] {
			addf("skills.links[%d]: unknown target %q", i, l.Target)
		}
	}

	for i, e := range d.Log {
		if e.Title == "" {
			addf("log[%d]: title is empty", i)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(problems, "; "))
	}
	return nil
}

// Project looks a project up by id.
func (d *Document) Project(id string) (Project, error) {
	for _, p := range d.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
}

// Node looks a skill node up by id.
func (d *Document) Node(id string) (Node, error) {
	for _, n := range d.Skills.Nodes {
		if n.ID == id {
			return n, nil
		}
	}
	return Node{}, fmt.Errorf("skill %q: %w", id, ErrNotFound)
}
