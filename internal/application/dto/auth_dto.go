package dto

// RegisterOwnerRequest alta de un OWNER con su primera empresa.
// Usuario, empresa y fila de ownership se crean en una sola transacción.
type RegisterOwnerRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	Phone              string `json:"phone"`
	EnterpriseName     string `json:"enterprise_name"`
	EnterpriseDocument string `json:"enterprise_document"`
}

// LoginRequest credenciales + empresa activa que el cliente quiere seleccionar.
// EnterpriseID es opcional: si falta, se usa la primera empresa del usuario.
type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EnterpriseID string `json:"enterprise_id"`
}

// LoginResponse token emitido + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
