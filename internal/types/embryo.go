// Package types provides the wire types exchanged with the disco server and the embox listener.
package types

// Well-known property names recognised by the disco protocol.
const (
	PropertyURL    = "url"
	PropertyResume = "resume"
)

// Property is one name/value pair of a record.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record ("embryo") is a schema-less bag of properties describing one query match.
// Names may repeat; Properties keeps arrival order.
type Record struct {
	Properties []Property `json:"properties"`
}

// Get returns the value of the last property called name.
func (r Record) Get(name string) (string, bool) {
	value, found := "", false
	for _, p := range r.Properties {
		if p.Name == name {
			value, found = p.Value, true
		}
	}
	return value, found
}

// URL returns the record's url property, or "" if absent.
func (r Record) URL() string {
	v, _ := r.Get(PropertyURL)
	return v
}

// Resume returns the record's resume property, or "" if absent.
func (r Record) Resume() string {
	v, _ := r.Get(PropertyResume)
	return v
}

// RecordList is the structured body of a disco query response or embox push.
type RecordList struct {
	Records []Record `json:"embryo_list"`
}

// QueryRequest is the async query payload. EmboxURL tells disco where to push results.
type QueryRequest struct {
	EmboxURL string `json:"embox_url"`
	Query    string `json:"query"`
}
