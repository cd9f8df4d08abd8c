package core

import (
	"encoding/json"
	"io"
)

// MarshalCatalog pretty-prints a catalog as JSON.
func MarshalCatalog(w io.Writer, cat Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cat)
}

// UnmarshalCatalog decodes catalog JSON written by MarshalCatalog.
func UnmarshalCatalog(r io.Reader) (Catalog, error) {
	var cat Catalog
	if err := json.NewDecoder(r).Decode(&cat); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// MarshalProperties writes property definitions as a JSON array.
func MarshalProperties(w io.Writer, defs []ScriptPropertyDef) error {
	if defs == nil {
		defs = []ScriptPropertyDef{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(defs)
}
