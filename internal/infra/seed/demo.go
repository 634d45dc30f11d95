// Package seed loads the demo catalog and demo accounts used by local runs.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const imageBase = "https://images.unsplash.com/photo-"
const imageOpts = "?auto=format&fit=crop&w=1000&q=80"

// パスワードのハッシュ化（authのhasherを渡す）
type Hasher interface {
	Hash(plain string) (string, error)
}

type demoUser struct {
	id, name, email, password string
	role                      model.Role
}

var demoUsers = []demoUser{
	{"1", "Admin User", "admin@99baazaar.com", "admin123", model.RoleAdmin},
	{"2", "Regular User", "user@example.com", "user123", model.RoleUser},
	{"3", "Sarah Johnson", "sarah@example.com", "sarah123", model.RoleUser},
	{"4", "Mike Williams", "mike@example.com", "mike123", model.RoleUser},
	{"5", "Karen Smith", "karen@example.com", "karen123", model.RoleUser},
}

func product(id, name, slug, desc, price, sale string, rating float64, photo string, badges []string, category, brand string) model.Product {
	p := model.Product{
		ID:          id,
		Name:        name,
		Slug:        slug,
		Description: desc,
		Price:       decimal.RequireFromString(price),
		Rating:      rating,
		Image:       imageBase + photo + imageOpts,
		Badges:      pq.StringArray(badges),
		Category:    category,
		Brand:       brand,
		IsActive:    true,
	}
	if sale != "" {
		p.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString(sale))
	}
	return p
}

// デモ用の商品（12件）
func Products() []model.Product {
	ps := []model.Product{
		product("1", "AirBeam Pro Earbuds", "airbeam-pro-earbuds",
			"Premium wireless earbuds with active noise cancellation and 36-hour battery life.",
			"249.99", "199.99", 4.8, "1590658268037-6bf12165a8df", []string{"Limited Time Deal", "Best Seller"}, "audio", "SoundWave"),
		product("2", "NexusBook Ultra", "nexusbook-ultra",
			"Ultra-thin laptop with 14-inch 4K display, 32GB RAM, and 1TB SSD.",
			"1499.99", "", 4.7, "1593642702821-c8da6771f0c6", []string{"Editor's Choice"}, "tech", "TechNova"),
		product("3", "HomeGuard Security Camera", "homeguard-security-camera",
			"Smart security camera with 4K resolution, night vision, and motion detection.",
			"189.99", "149.99", 4.5, "1595853035070-59a39fe84de3", []string{"Top Rated"}, "home", "SecurityPlus"),
		product("4", "Quantum Smart Watch", "quantum-smart-watch",
			"Advanced smartwatch with health monitoring, GPS, and 7-day battery life.",
			"299.99", "", 4.6, "1579586337278-3befd40fd17a", []string{"New Release"}, "wearables", "TechFit"),
		product("5", "EcoFlask Insulated Bottle", "ecoflask-insulated-bottle",
			"Vacuum-insulated water bottle that keeps drinks cold for 24 hours or hot for 12 hours.",
			"39.99", "", 4.9, "1602083973990-c933e90f7469", []string{"Eco-Friendly"}, "lifestyle", "GreenLife"),
		product("6", "LuxSmart LED Bulb Set", "luxsmart-led-bulb-set",
			"Smart LED bulbs with voice control, millions of colors, and energy-saving features.",
			"79.99", "59.99", 4.4, "1592294419385-dd5e7c0ac69d", []string{"Limited Time Deal"}, "home", "SmartHome"),
		product("7", "TrailBlazer Hiking Backpack", "trailblazer-hiking-backpack",
			"Durable 45L hiking backpack with hydration system and multiple compartments.",
			"129.99", "", 4.7, "1622560480654-d96214fdc887", []string{"Best for Adventures"}, "outdoor", "OutdoorPlus"),
		product("8", "SkyView Telescope", "skyview-telescope",
			"Advanced digital telescope with smartphone connectivity and star tracking.",
			"349.99", "", 4.6, "1605726268825-95a88f749e5a", []string{"Staff Pick"}, "lifestyle", "StarGazer"),
		product("9", "PowerCharge 10K", "powercharge-10k",
			"10,000mAh power bank with fast charging and dual USB ports.",
			"49.99", "39.99", 4.5, "1583863733615-3e279393e55d", []string{"Travel Essential"}, "tech", "PowerMax"),
		product("10", "VoyageGrip Camera Stabilizer", "voyagegrip-camera-stabilizer",
			"Professional 3-axis gimbal stabilizer for smartphones and compact cameras.",
			"119.99", "", 4.7, "1589019121253-226beb77e7e4", []string{"Creator's Choice"}, "tech", "CameraGear"),
		product("11", "SonicWave Sound System", "sonicwave-sound-system",
			"Wireless home theater system with Dolby Atmos and voice control.",
			"599.99", "", 4.8, "1545454675-3531b543be5d", []string{"Premium Quality"}, "audio", "SoundWave"),
		product("12", "ZenSleep Mattress", "zensleep-mattress",
			"Memory foam mattress with cooling gel and pressure relief technology.",
			"899.99", "699.99", 4.9, "1631157826904-df79fa419420", []string{"Limited Time Deal", "Top Rated"}, "home", "DreamSleep"),
	}

	// おすすめ・新着
	for i := range ps {
		switch ps[i].ID {
		case "1", "2", "10":
			ps[i].Featured = true
		}
		switch ps[i].ID {
		case "1", "4":
			ps[i].IsNew = true
		}
	}
	return ps
}

// 既にあるものはスキップするので何度呼んでもよい
func Run(ctx context.Context, products repo.ProductRepository, users repo.UserRepository, hasher Hasher, now time.Time, log *zap.Logger) error {
	var created int
	for _, p := range Products() {
		_, err := products.FindByID(ctx, p.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		p.CreatedAt = now
		p.UpdatedAt = now
		if _, err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		created++
	}

	var accounts int
	for _, du := range demoUsers {
		_, err := users.FindByEmail(ctx, du.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, repo.ErrUserNotFound) {
			return fmt.Errorf("seed user %s: %w", du.email, err)
		}
		hashed, err := hasher.Hash(du.password)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", du.email, err)
		}
		if err := users.Create(ctx, &model.User{
			ID:           du.id,
			Name:         du.name,
			Email:        du.email,
			PasswordHash: hashed,
			Role:         du.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", du.email, err)
		}
		accounts++
	}

	log.Info("demo data seeded", zap.Int("products", created), zap.Int("users", accounts))
	return nil
}
