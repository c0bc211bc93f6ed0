package postgres

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// Seed populates an empty database with the default plans, demo tenants, a
// demo catalog with orders, and an admin user. It is idempotent: existing
// rows are left untouched.
func Seed(ctx context.Context, db *gorm.DB) error {
	planIDs, err := seedPlans(ctx, db)
	if err != nil {
		return err
	}
	if err := seedClients(ctx, db, planIDs); err != nil {
		return err
	}
	if err := seedUsers(ctx, db); err != nil {
		return err
	}
	return seedCatalog(ctx, db)
}

func seedPlans(ctx context.Context, db *gorm.DB) (map[string]uint, error) {
	plans := []*domain.Plan{
		{
			Name: "gratuito",
			Features: domain.FeatureSet{
				domain.FeatureCatalogView: true,
			},
			DefaultPlan: true,
		},
		{
			Name: "basico",
			Features: domain.FeatureSet{
				domain.FeatureCatalogView: true,
				domain.FeatureCatalogEdit: true,
			},
		},
		{
			Name: "premium",
			Features: domain.FeatureSet{
				domain.FeatureCatalogView:         true,
				domain.FeatureCatalogEdit:         true,
				domain.FeatureWhatsAppIntegration: true,
				domain.FeatureRealtimeTracking:    true,
				domain.FeatureBilling:             true,
				domain.FeatureReports:             true,
			},
		},
	}

	ids := make(map[string]uint, len(plans))
	for _, plan := range plans {
		record := planFromDomain(plan)
		err := db.WithContext(ctx).
			Where("name = ?", plan.Name).
			FirstOrCreate(record).Error
		if err != nil {
			return nil, fmt.Errorf("seed plan %q: %w", plan.Name, err)
		}
		ids[plan.Name] = record.ID
	}
	return ids, nil
}

func seedClients(ctx context.Context, db *gorm.DB, planIDs map[string]uint) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed clients: hash: %w", err)
	}

	free := planIDs["gratuito"]
	premium := planIDs["premium"]
	clients := []*clientRecord{
		{Name: "Pizzaria do Bairro", Email: "pizzaria@example.com", PasswordHash: string(hash), PlanID: &premium, Paid: true},
		{Name: "Padaria Central", Email: "padaria@example.com", PasswordHash: string(hash), PlanID: &free},
		{Name: "Lanchonete da Praça", Email: "lanchonete@example.com", PasswordHash: string(hash), PlanID: &free},
	}
	for _, client := range clients {
		err := db.WithContext(ctx).
			Where("name = ?", client.Name).
			FirstOrCreate(client).Error
		if err != nil {
			return fmt.Errorf("seed client %q: %w", client.Name, err)
		}
	}
	return nil
}

func seedUsers(ctx context.Context, db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed users: hash: %w", err)
	}

	admin := &userRecord{
		Email:        "admin@example.com",
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Permissions:  "{}",
	}
	err = db.WithContext(ctx).
		Where("email = ?", admin.Email).
		FirstOrCreate(admin).Error
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}

func seedCatalog(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&productRecord{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if count > 0 {
		return nil
	}

	var owner clientRecord
	if err := db.WithContext(ctx).Where("name = ?", "Pizzaria do Bairro").First(&owner).Error; err != nil {
		return fmt.Errorf("seed products: owner: %w", err)
	}

	products := []*productRecord{
		{Name: "Pizza Margherita", Description: "Molho de tomate, muçarela e manjericão", Price: 39.90, ClientID: &owner.ID},
		{Name: "Pizza Calabresa", Description: "Calabresa fatiada com cebola", Price: 42.50, ClientID: &owner.ID},
		{Name: "Refrigerante 2L", Price: 12.00, ClientID: &owner.ID},
	}
	if err := db.WithContext(ctx).Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	pedidos := []*pedidoRecord{
		{ClienteNome: "João Silva", ProdutoID: products[0].ID, Quantidade: 1, Status: string(domain.StatusPendente)},
		{ClienteNome: "Maria Souza", ProdutoID: products[1].ID, Quantidade: 2, Status: string(domain.StatusEmPreparo)},
		{ClienteNome: "Carlos Lima", ProdutoID: products[2].ID, Quantidade: 3, Status: string(domain.StatusEntregue)},
	}
	if err := db.WithContext(ctx).Create(&pedidos).Error; err != nil {
		return fmt.Errorf("seed pedidos: %w", err)
	}
	return nil
}
