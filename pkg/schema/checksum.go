package schema

import (
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/minio/sha256-simd"
)

type canonicalEndpoint struct {
	URI     string `json:"uri"`
	Method  string `json:"method"`
	Input   string `json:"input"`
	Returns string `json:"returns"`
}

type canonicalSchema struct {
	Version   string                       `json:"version"`
	Structs   map[string][][2]string       `json:"structs"`
	Endpoints map[string]canonicalEndpoint `json:"endpoints"`
}

// Canonical returns the normalized serialization the checksum is taken over:
// JSON with sorted keys, struct fields sorted by name, schema_diff left out.
func (s *Schema) Canonical() []byte {
	c := canonicalSchema{
		Version:   s.Version,
		Structs:   make(map[string][][2]string, len(s.Structs)),
		Endpoints: make(map[string]canonicalEndpoint, len(s.Endpoints)),
	}
	for name, st := range s.Structs {
		fields := make([][2]string, 0, len(st.Fields))
		for _, f := range st.Fields {
			fields = append(fields, [2]string{f.Name, f.Type.String()})
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i][0] < fields[j][0] })
		c.Structs[name] = fields
	}
	for name, ep := range s.Endpoints {
		c.Endpoints[name] = canonicalEndpoint{
			URI:     ep.URI,
			Method:  string(ep.Method),
			Input:   ep.Input.String(),
			Returns: ep.Returns.String(),
		}
	}
	// Marshal cannot fail on maps of strings.
	out, _ := json.Marshal(c)
	return out
}

// Checksum returns the hex SHA-256 of the canonical form. Two schemas with the
// same structs, endpoints and version share a checksum regardless of field
// order in the source document.
func (s *Schema) Checksum() string {
	sum := sha256.Sum256(s.Canonical())
	return hex.EncodeToString(sum[:])
}
