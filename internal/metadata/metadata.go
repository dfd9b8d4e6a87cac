// Package metadata parses and validates resource descriptors.
//
// A descriptor is the metadata.json file at the root of a project directory.
// Its "type" field decides which platform endpoint an upload targets; all
// other fields are optional and default to their zero values.
package metadata

// DescriptorName is the conventional descriptor filename.
const DescriptorName = "metadata.json"

// ResourceType identifies the kind of project a descriptor declares.
type ResourceType string

const (
	TypeAgent   ResourceType = "AGENT"
	TypeModel   ResourceType = "MODEL"
	TypeDataset ResourceType = "DATASET"
)

// Valid reports whether t is one of the recognized resource types.
// Matching is case-sensitive: the platform expects upper-case kinds.
func (t ResourceType) Valid() bool {
	switch t {
	case TypeAgent, TypeModel, TypeDataset:
		return true
	}
	return false
}

func (t ResourceType) String() string {
	return string(t)
}

// Resource is the declared identity of a project directory.
type Resource struct {
	Type        ResourceType `json:"type"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Author      string       `json:"author,omitempty"`
	CreatedAt   string       `json:"created_at,omitempty"`
}
