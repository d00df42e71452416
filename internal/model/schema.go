package model

// FormSchema is the in-memory authoring representation of a program's
// registration form. It is mutated only through the schema editor's CRUD
// operations and normalized immediately before serialization; at fill time
// it is read-only.
type FormSchema struct {
	Program       string     `json:"program" bson:"program"`
	Title         string     `json:"title" bson:"title"`
	Description   string     `json:"description,omitempty" bson:"description,omitempty"`
	LayoutColumns int        `json:"layoutColumns" bson:"layoutColumns"`
	Steps         []FormStep `json:"steps" bson:"steps"`
}

// Clone returns a deep copy of the schema
func (s FormSchema) Clone() FormSchema {
	out := s
	out.Steps = make([]FormStep, len(s.Steps))
	for i, st := range s.Steps {
		out.Steps[i] = st.Clone()
	}
	return out
}

// FieldByName returns the field with the given slug name, or nil
func (s *FormSchema) FieldByName(name string) *FormField {
	for i := range s.Steps {
		for j := range s.Steps[i].Fields {
			if s.Steps[i].Fields[j].Name == name {
				return &s.Steps[i].Fields[j]
			}
		}
	}
	return nil
}

// StepByKey returns the step with the given key, or nil
func (s *FormSchema) StepByKey(key string) *FormStep {
	for i := range s.Steps {
		if s.Steps[i].Key == key {
			return &s.Steps[i]
		}
	}
	return nil
}

// FieldNames returns every field name in step order
func (s *FormSchema) FieldNames() []string {
	var names []string
	for _, st := range s.Steps {
		for _, f := range st.Fields {
			names = append(names, f.Name)
		}
	}
	return names
}
