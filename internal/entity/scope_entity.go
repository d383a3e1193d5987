package entity

// ScopeConfig is the professor-defined rubric every upload is evaluated against.
type ScopeConfig struct {
	LearningObjectives []string `json:"learning_objectives" yaml:"learning_objectives"`
}

func (s ScopeConfig) IsEmpty() bool {
	return len(s.LearningObjectives) == 0
}
