package postgres

import (
	"encoding/json"
	"time"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// Records are the GORM representations of the domain types. Feature and
// permission maps are stored as jsonb columns.

type planRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Features    string `gorm:"type:jsonb;default:'{}'"`
	DefaultPlan bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (planRecord) TableName() string { return "plans" }

type clientRecord struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"index;not null"`
	Email        string
	Phone        string
	PasswordHash string
	PlanID       *uint
	Plan         *planRecord `gorm:"foreignKey:PlanID"`
	Blocked      bool
	Paid         bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (clientRecord) TableName() string { return "clients" }

type userRecord struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	Username     string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         string `gorm:"not null;default:USER"`
	ClientID     *uint
	Permissions  string `gorm:"type:jsonb;default:'{}'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

type productRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Price       float64
	ImageURL    string
	ClientID    *uint `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productRecord) TableName() string { return "products" }

type pedidoRecord struct {
	ID          uint `gorm:"primaryKey"`
	ClienteNome string
	ProdutoID   uint           `gorm:"index;not null"`
	Produto     *productRecord `gorm:"foreignKey:ProdutoID"`
	Quantidade  int
	Status      string `gorm:"not null;default:pendente"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (pedidoRecord) TableName() string { return "pedidos" }

// --- Mapping helpers ---

func marshalBoolMap(m map[string]bool) string {
	if len(m) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func unmarshalBoolMap(raw string) map[string]bool {
	if raw == "" {
		return map[string]bool{}
	}
	var m map[string]bool
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]bool{}
	}
	return m
}

func planFromDomain(p *domain.Plan) *planRecord {
	features := make(map[string]bool, len(p.Features))
	for f, enabled := range p.Features {
		features[string(f)] = enabled
	}
	return &planRecord{
		ID:          p.ID,
		Name:        p.Name,
		Features:    marshalBoolMap(features),
		DefaultPlan: p.DefaultPlan,
	}
}

func (r *planRecord) toDomain() *domain.Plan {
	set := make(domain.FeatureSet)
	for k, enabled := range unmarshalBoolMap(r.Features) {
		set[domain.Feature(k)] = enabled
	}
	return &domain.Plan{
		ID:          r.ID,
		Name:        r.Name,
		Features:    set,
		DefaultPlan: r.DefaultPlan,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func clientFromDomain(c *domain.Client) *clientRecord {
	return &clientRecord{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		PasswordHash: c.PasswordHash,
		PlanID:       c.PlanID,
		Blocked:      c.Blocked,
		Paid:         c.Paid,
	}
}

func (r *clientRecord) toDomain() *domain.Client {
	c := &domain.Client{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		PasswordHash: r.PasswordHash,
		PlanID:       r.PlanID,
		Blocked:      r.Blocked,
		Paid:         r.Paid,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Plan != nil {
		c.Plan = r.Plan.toDomain()
	}
	return c
}

func userFromDomain(u *domain.User) *userRecord {
	return &userRecord{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		ClientID:     u.ClientID,
		Permissions:  marshalBoolMap(u.Permissions),
	}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		ClientID:     r.ClientID,
		Permissions:  unmarshalBoolMap(r.Permissions),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func productFromDomain(p *domain.Product) *productRecord {
	return &productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		ClientID:    p.ClientID,
	}
}

func (r *productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		ClientID:    r.ClientID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func pedidoFromDomain(p *domain.Pedido) *pedidoRecord {
	return &pedidoRecord{
		ID:          p.ID,
		ClienteNome: p.ClienteNome,
		ProdutoID:   p.ProdutoID,
		Quantidade:  p.Quantidade,
		Status:      string(p.Status),
	}
}

func (r *pedidoRecord) toDomain() *domain.Pedido {
	p := &domain.Pedido{
		ID:          r.ID,
		ClienteNome: r.ClienteNome,
		ProdutoID:   r.ProdutoID,
		Quantidade:  r.Quantidade,
		Status:      domain.PedidoStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Produto != nil {
		p.Produto = r.Produto.toDomain()
	}
	return p
}
