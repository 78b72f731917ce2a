package contacts

type Contact struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	Street  string `json:"street,omitempty"`
	Number  string `json:"number,omitempty"`
}
