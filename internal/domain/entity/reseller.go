package entity

// Reseller identidad de un revendedor, usada solo para atribución en el
// desglose de ventas. Fuente opcional: puede faltar por completo.
type Reseller struct {
	ID    string
	Name  string
	Email string
}

// DisplayName devuelve el nombre visible; si no hay nombre usa el email.
func (r Reseller) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Email
}
