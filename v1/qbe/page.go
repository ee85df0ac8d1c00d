package qbe

// Page bounds a result set. A zero Limit means no limit.
type Page struct {
	Limit  int `json:"limit,omitempty" yaml:"limit"`
	Offset int `json:"offset,omitempty" yaml:"offset"`
}
