package app

import (
	"net/http"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/electromaison/storefront-api/app/admin"
	"github.com/electromaison/storefront-api/app/auth"
	carthttp "github.com/electromaison/storefront-api/app/cart"
	"github.com/electromaison/storefront-api/app/catalog"
	"github.com/electromaison/storefront-api/app/contact"
	"github.com/electromaison/storefront-api/app/products"
	"github.com/electromaison/storefront-api/app/tags"
	"github.com/electromaison/storefront-api/app/uploads"
	"github.com/electromaison/storefront-api/cart"
	"github.com/electromaison/storefront-api/mail"
	"github.com/electromaison/storefront-api/models"
	"github.com/electromaison/storefront-api/storage"
)

// NewServer wires the repositories, ports and handlers into one mux.
// The returned cleanup closes the database connection.
func NewServer(cfg Config) (*http.Server, func(), error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, nil, err
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Tag{},
		&models.ProductTag{},
		&models.ProductImage{},
		&models.User{},
		&models.UserProfile{},
	); err != nil {
		return nil, nil, err
	}

	productsRepo := models.NewProductsRepository(db)
	tagsRepo := models.NewTagsRepository(db)
	usersRepo := models.NewUsersRepository(db)
	profilesRepo := models.NewProfilesRepository(db)

	cartStorage, err := cart.NewFileStorage(cfg.CartDir)
	if err != nil {
		return nil, nil, err
	}
	objectStore, err := storage.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		return nil, nil, err
	}
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.ContactRecipient)

	catalogHandler := catalog.NewCatalogHandler(productsRepo)
	productsHandler := products.NewHandler(productsRepo)
	productsHandler.EnforceDiscountPricing = cfg.EnforceDiscountPricing
	tagsHandler := tags.NewTagHandler(tagsRepo)
	cartHandler := carthttp.NewCartHandler(
		carthttp.NewManager(cartStorage),
		productsRepo,
		carthttp.StoreInfo{Name: cfg.StoreName, Phone: cfg.StorePhone},
	)
	contactHandler := contact.NewContactHandler(mailer)
	uploadHandler := uploads.NewUploadHandler(objectStore)
	adminHandler := admin.NewAdminHandler(profilesRepo)
	authHandler := auth.NewAuthHandler(usersRepo, profilesRepo, auth.NewTokenIssuer(cfg.JWTSecret))

	mux := http.NewServeMux()

	// Public catalog
	mux.HandleFunc("GET /api/products", catalogHandler.HandleGet)
	mux.HandleFunc("GET /api/products/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("GET /api/tags", tagsHandler.HandleGetAll)

	// Cart
	mux.HandleFunc("GET /api/cart", cartHandler.HandleGet)
	mux.HandleFunc("POST /api/cart/items", cartHandler.HandleAddItem)
	mux.HandleFunc("PUT /api/cart/items/{productId}", cartHandler.HandleUpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{productId}", cartHandler.HandleRemoveItem)
	mux.HandleFunc("DELETE /api/cart", cartHandler.HandleClear)
	mux.HandleFunc("GET /api/cart/checkout-link", cartHandler.HandleCheckoutLink)

	// Contact + auth
	mux.HandleFunc("POST /api/contact", contactHandler.HandleSend)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.HandleFunc("GET /api/auth/me", authHandler.HandleMe)

	// Admin
	mux.HandleFunc("POST /api/admin/products", authHandler.RequireAdmin(productsHandler.HandleCreate))
	mux.HandleFunc("PUT /api/admin/products/{id}", authHandler.RequireAdmin(productsHandler.HandleUpdate))
	mux.HandleFunc("DELETE /api/admin/products/{id}", authHandler.RequireAdmin(productsHandler.HandleDelete))
	mux.HandleFunc("POST /api/admin/tags", authHandler.RequireAdmin(tagsHandler.HandleCreate))
	mux.HandleFunc("POST /api/admin/uploads", authHandler.RequireAdmin(uploadHandler.HandleUpload))
	mux.HandleFunc("GET /api/admin/stats", authHandler.RequireAdmin(adminHandler.HandleStats))

	// Uploaded images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}
	return srv, cleanup, nil
}
