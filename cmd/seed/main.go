// Seeds the database with an admin account and a small demo catalog.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/electromaison/storefront-api/models"
)

type seedProduct struct {
	name          string
	description   string
	price         int64
	originalPrice int64 // zero means none
	category      string
	stock         int
	featured      bool
	tags          []string
	imageURL      string
}

var catalog = []seedProduct{
	{
		name:          "Réfrigérateur LG 450L",
		description:   "Réfrigérateur deux portes avec distributeur d'eau.",
		price:         125000,
		originalPrice: 135000,
		category:      "Réfrigérateurs",
		stock:         15,
		featured:      true,
		tags:          []string{"Promo", "No Frost"},
		imageURL:      "/uploads/seed/frigo-lg-450.jpg",
	},
	{
		name:        "Réfrigérateur Samsung Twin Cooling",
		description: "Froid ventilé indépendant pour chaque compartiment.",
		price:       118000,
		category:    "Réfrigérateurs",
		stock:       8,
		featured:    true,
		tags:        []string{"No Frost"},
		imageURL:    "/uploads/seed/frigo-samsung-twin.jpg",
	},
	{
		name:          "Lave-linge Bosch Série 6",
		description:   "Lave-linge frontal 8kg, 1400 tours/min.",
		price:         85000,
		originalPrice: 92000,
		category:      "Lave-linge",
		stock:         12,
		featured:      true,
		tags:          []string{"Promo"},
		imageURL:      "/uploads/seed/lave-linge-bosch.jpg",
	},
	{
		name:        "Lave-linge Whirlpool 9kg",
		description: "Grande capacité pour les familles nombreuses.",
		price:       72000,
		category:    "Lave-linge",
		stock:       20,
		imageURL:    "/uploads/seed/lave-linge-whirlpool.jpg",
	},
	{
		name:          "TV LG OLED 55\"",
		description:   "Dalle OLED 4K, Dolby Vision et webOS.",
		price:         185000,
		originalPrice: 210000,
		category:      "TV",
		stock:         6,
		featured:      true,
		tags:          []string{"Promo", "4K"},
		imageURL:      "/uploads/seed/tv-lg-oled55.jpg",
	},
	{
		name:        "TV Samsung QLED 65\"",
		description: "QLED 4K avec mode jeu 120Hz.",
		price:       165000,
		category:    "TV",
		stock:       9,
		tags:        []string{"4K"},
		imageURL:    "/uploads/seed/tv-samsung-qled65.jpg",
	},
	{
		name:        "Climatiseur Gree 12000 BTU",
		description: "Split inverter, chaud et froid.",
		price:       98000,
		category:    "Climatiseurs",
		stock:       18,
		tags:        []string{"Inverter"},
		imageURL:    "/uploads/seed/clim-gree-12000.jpg",
	},
	{
		name:        "Micro-ondes Samsung 28L",
		description: "Gril intégré et revêtement céramique.",
		price:       24000,
		category:    "Micro-ondes",
		stock:       30,
		imageURL:    "/uploads/seed/micro-ondes-samsung.jpg",
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	db, err := gorm.Open(postgres.Open(os.Getenv("DB_DSN")), &gorm.Config{})
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Tag{},
		&models.ProductTag{},
		&models.ProductImage{},
		&models.User{},
		&models.UserProfile{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	seedAdmin(db)
	seedCatalog(db)
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("admin %s already exists", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	user := models.User{Email: email, PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("create admin: %v", err)
	}
	profile := models.UserProfile{ID: user.ID, Role: models.RoleAdmin}
	if err := db.Create(&profile).Error; err != nil {
		log.Fatalf("create admin profile: %v", err)
	}
	log.Printf("created admin %s", email)
}

func seedCatalog(db *gorm.DB) {
	productsRepo := models.NewProductsRepository(db)
	tagsRepo := models.NewTagsRepository(db)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		log.Printf("catalog already has %d products, skipping seed", count)
		return
	}

	for _, sp := range catalog {
		description := sp.description
		product := models.Product{
			Name:        sp.name,
			Description: &description,
			Price:       decimal.NewFromInt(sp.price),
			Category:    sp.category,
			Stock:       sp.stock,
			Featured:    sp.featured,
		}
		if sp.originalPrice > 0 {
			op := decimal.NewFromInt(sp.originalPrice)
			product.OriginalPrice = &op
		}

		var tagIDs []string
		for _, name := range sp.tags {
			tag, err := tagsRepo.GetOrCreate(name)
			if err != nil {
				log.Printf("tag %q: %v", name, err)
				continue
			}
			tagIDs = append(tagIDs, tag.ID)
		}

		images := []models.ProductImage{
			{URL: sp.imageURL, IsMain: true, DisplayOrder: 0},
		}

		if _, err := productsRepo.CreateProduct(&product, tagIDs, images); err != nil {
			log.Printf("product %q: %v", sp.name, err)
			continue
		}
		log.Printf("created product %q", sp.name)
	}
}
