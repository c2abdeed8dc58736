// Package catalog provides catalog loading from embedded defaults and
// optional user-supplied files.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

//go:embed defaults.json
var defaultsJSON []byte

// document is the on-disk catalog shape. A user file may supply any subset
// of the top-level sections; sections it omits keep the embedded defaults.
type document struct {
	Constraints   *Constraints `json:"constraints"`
	WildcardRooms []string     `json:"wildcard_rooms"`
	Rooms         []Room       `json:"rooms"`
	Teams         []Team       `json:"teams"`
}

// Overrides carries CLI-level constraint overrides. Nil fields leave the
// loaded value untouched.
type Overrides struct {
	MinCredits       *float64
	MaxCredits       *float64
	MaxFloorsPerTeam *int
	MaxTeamsPerFloor *int
}

// Load resolves the catalog from embedded defaults, an optional catalog
// file, and CLI overrides, in that order. Soft problems are reported
// through warn.
func Load(path string, overrides Overrides, warn func(string)) (*Catalog, error) {
	doc, err := decodeDocument(defaultsJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog defaults: %w", err)
	}

	if path != "" {
		layer, err := readDocumentFile(path)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", path, err)
		}
		doc = mergeDocuments(doc, layer)
	}

	constraints := Constraints{}
	if doc.Constraints != nil {
		constraints = *doc.Constraints
	}
	constraints = applyOverrides(constraints, overrides)

	return New(doc.Rooms, doc.Teams, constraints, doc.WildcardRooms, warn)
}

// decodeDocument parses a catalog document and rejects trailing content.
func decodeDocument(data []byte) (document, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	var doc document
	if err := decoder.Decode(&doc); err != nil {
		return document{}, err
	}
	var extra any
	if err := decoder.Decode(&extra); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return document{}, err
	}
	return document{}, errors.New("invalid trailing content after JSON object")
}

// readDocumentFile parses a catalog document from the given path.
func readDocumentFile(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, err
	}
	return decodeDocument(data)
}

// mergeDocuments overlays the sections present in the layer onto the base.
func mergeDocuments(base document, layer document) document {
	if layer.Constraints != nil {
		base.Constraints = layer.Constraints
	}
	if layer.WildcardRooms != nil {
		base.WildcardRooms = layer.WildcardRooms
	}
	if layer.Rooms != nil {
		base.Rooms = layer.Rooms
	}
	if layer.Teams != nil {
		base.Teams = layer.Teams
	}
	return base
}

// applyOverrides applies non-nil CLI overrides onto the constraints.
func applyOverrides(c Constraints, o Overrides) Constraints {
	if o.MinCredits != nil {
		c.MinCredits = *o.MinCredits
	}
	if o.MaxCredits != nil {
		c.MaxCredits = *o.MaxCredits
	}
	if o.MaxFloorsPerTeam != nil {
		c.MaxFloorsPerTeam = *o.MaxFloorsPerTeam
	}
	if o.MaxTeamsPerFloor != nil {
		c.MaxTeamsPerFloor = *o.MaxTeamsPerFloor
	}
	return c
}
