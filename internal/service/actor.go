package service

// ActorContext carries the identity and client metadata the HTTP layer
// hands to the core. The core trusts it as-is; authentication happens
// upstream.
type ActorContext struct {
	UserID     string
	EmployeeID string
	Username   string
	Role       string
	Team       string
	IP         string
	UserAgent  string
}

// Identity returns the best available actor identifier for audit
// attribution, falling back through the known identity fields.
func (a ActorContext) Identity() string {
	switch {
	case a.EmployeeID != "":
		return a.EmployeeID
	case a.UserID != "":
		return a.UserID
	case a.Username != "":
		return a.Username
	default:
		return "unknown"
	}
}
