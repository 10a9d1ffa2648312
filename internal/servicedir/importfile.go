package servicedir

import (
	"fmt"
	"io"

	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"gopkg.in/yaml.v3"
)

// File is the YAML document accepted by "homegrid service import":
//
//	homes:
//	  cabin:
//	    - id: pve
//	      name: Proxmox
//	      kind: hypervisor
//	      url: http://10.0.0.2:8080/stats
type File struct {
	Homes map[string][]FileService `yaml:"homes"`
}

// FileService is one service entry of a File.
type FileService struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
}

// ParseFile decodes a services file into records, keeping the order
// services are listed in within each home. Homes are returned in the order
// they appear in the document.
func ParseFile(r io.Reader) ([]Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("servicedir: failed to parse services file: %w", err)
	}

	var f File
	if err := doc.Decode(&f); err != nil {
		return nil, fmt.Errorf("servicedir: failed to parse services file: %w", err)
	}

	var records []Record
	for _, home := range homeOrder(&doc) {
		for i, s := range f.Homes[home] {
			kind, err := domain.ParseKind(s.Kind)
			if err != nil {
				return nil, fmt.Errorf("servicedir: home %q entry %d: %w", home, i+1, err)
			}
			name := s.Name
			if name == "" {
				name = s.ID
			}
			rec := Record{ID: s.ID, Name: name, Kind: kind, Home: home, URL: s.URL}
			if err := rec.Validate(); err != nil {
				return nil, fmt.Errorf("servicedir: home %q entry %d: %w", home, i+1, err)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// homeOrder returns the keys of the top-level "homes" mapping in document
// order. Go maps lose it.
func homeOrder(doc *yaml.Node) []string {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "homes" {
			continue
		}
		homes := root.Content[i+1]
		if homes.Kind != yaml.MappingNode {
			return nil
		}
		var order []string
		for j := 0; j+1 < len(homes.Content); j += 2 {
			order = append(order, homes.Content[j].Value)
		}
		return order
	}
	return nil
}
