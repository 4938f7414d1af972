package domain

// Roles de cuenta.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Tenant identifica la cuenta dueña de los datos en una operación.
// Se pasa explícitamente a cada caso de uso; ningún repositorio lo lee de estado global.
type Tenant struct {
	ID     string
	UserID string
	Role   string
}

// NewTenant arma el contexto de tenant para un usuario: el tenant de un cliente es su propio ID.
func NewTenant(userID, role string) Tenant {
	return Tenant{ID: userID, UserID: userID, Role: role}
}

// Validate devuelve ErrUnauthorized si no hay identidad.
func (t Tenant) Validate() error {
	if t.ID == "" {
		return ErrUnauthorized
	}
	return nil
}

// IsAdmin indica si el tenant actúa con rol administrador.
func (t Tenant) IsAdmin() bool { return t.Role == RoleAdmin }
