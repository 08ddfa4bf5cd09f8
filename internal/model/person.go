package model

// Person is a registered depositor. People are created from form responses
// and never change afterwards.
type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`

	// RegisteredAt is the timestamp of the form response, kept as written.
	RegisteredAt string `json:"registered_at,omitempty"`
}

// Response is a single form submission waiting to be registered.
type Response struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Processed bool   `json:"processed"`
}
