package domain

// Caller roles carried in JWT claims. RoleService marks trusted
// service-to-service callers that may act on any recipient's inbox;
// RoleUser callers may only act on their own.
const (
	RoleService = "service"
	RoleUser    = "user"
)
