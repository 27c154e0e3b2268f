package entity

import "time"

// Enterprise representa una empresa instaladora (tenant del sistema).
// Todo dato de negocio vive dentro de la frontera de una Enterprise.
type Enterprise struct {
	ID        string
	Name      string
	Document  string // NIT / CNPJ / identificación fiscal
	Email     string
	Phone     string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EnterpriseOwner asociación muchos-a-muchos (enterprise_id, user_id).
// Un usuario solo puede operar sobre empresas donde aparece como owner
// (o que coincidan con su enterprise_belong_id si es subordinado).
type EnterpriseOwner struct {
	EnterpriseID string
	UserID       string
	CreatedAt    time.Time
}
