package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for project import.
type ImportSchema struct {
	Project      ProjectImport      `json:"project"`
	Phases       []PhaseImport      `json:"phases"`
	Subphases    []SubphaseImport   `json:"subphases,omitempty"`
	Dependencies []DependencyImport `json:"dependencies,omitempty"`
	Staff        []StaffImport      `json:"staff,omitempty"`
	Equipment    []EquipmentImport  `json:"equipment,omitempty"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// PhaseImport defines a phase in the import file. Refs are file-local
// handles replaced by generated ids during conversion.
type PhaseImport struct {
	Ref         string   `json:"ref"`
	Name        string   `json:"name"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Color       string   `json:"color,omitempty"`
	IsMilestone bool     `json:"is_milestone,omitempty"`
	Completion  *float64 `json:"completion,omitempty"`
	Order       int      `json:"order"`
}

// SubphaseImport defines a subphase. ParentRef nests it under another
// subphase; otherwise it sits directly under PhaseRef.
type SubphaseImport struct {
	Ref         string   `json:"ref"`
	PhaseRef    string   `json:"phase_ref"`
	ParentRef   *string  `json:"parent_ref,omitempty"`
	Name        string   `json:"name"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Color       string   `json:"color,omitempty"`
	IsMilestone bool     `json:"is_milestone,omitempty"`
	Completion  *float64 `json:"completion,omitempty"`
	Order       int      `json:"order"`
}

// DependencyImport defines a typed edge between two phases or subphases.
type DependencyImport struct {
	PredecessorRef string `json:"predecessor_ref"`
	SuccessorRef   string `json:"successor_ref"`
	Type           string `json:"type"`
	LagDays        int    `json:"lag_days,omitempty"`
}

// StaffImport books a person onto the project or onto one ref.
type StaffImport struct {
	OwnerRef   *string `json:"owner_ref,omitempty"`
	PersonName string  `json:"person_name"`
	Role       string  `json:"role,omitempty"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
}

// EquipmentImport books a piece of equipment the same way.
type EquipmentImport struct {
	OwnerRef      *string `json:"owner_ref,omitempty"`
	EquipmentName string  `json:"equipment_name"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
}

// LoadImportSchema reads and parses a project import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
