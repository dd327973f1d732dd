package models

type Role string

const (
	RoleIngestor Role = "ingestor"
	RoleAdmin    Role = "admin"
)

// Principal is the caller identified by a verified bearer token.
type Principal struct {
	Subject string `json:"subject"`
	Role    Role   `json:"role"`
}
