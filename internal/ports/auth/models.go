package auth

// Claims representa la información extraída del token.
// Name es lo que se guarda como executor en los logs de protocolo.
type Claims struct {
	UserID   string
	Name     string
	Email    string
	TenantID string
}

// Executor devuelve el nombre visible, o el UserID si el token no trae nombre.
func (c Claims) Executor() string {
	if c.Name != "" {
		return c.Name
	}
	return c.UserID
}
