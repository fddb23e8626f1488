package app

import (
	"os"
	"strconv"
)

type Config struct {
	Env  string
	Port string

	DatabaseDSN string
	JWTSecret   string

	SMTPHost         string
	SMTPPort         string
	SMTPFrom         string
	ContactRecipient string

	StoreName  string
	StorePhone string

	UploadDir     string
	UploadBaseURL string
	CartDir       string

	// EnforceDiscountPricing rejects admin writes where original_price
	// does not exceed price, instead of storing whatever was entered.
	EnforceDiscountPricing bool
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func LoadConfig() Config {
	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnv("APP_PORT", "8080"),

		DatabaseDSN: getEnv("DB_DSN", ""),
		JWTSecret:   getEnv("JWT_SECRET", "dev-only-secret"),

		SMTPHost:         getEnv("SMTP_HOST", "localhost"),
		SMTPPort:         getEnv("SMTP_PORT", "1025"),
		SMTPFrom:         getEnv("SMTP_FROM", "noreply@electromaison.fr"),
		ContactRecipient: getEnv("CONTACT_RECIPIENT", "contact@electromaison.fr"),

		StoreName:  getEnv("STORE_NAME", "ElectroMaison"),
		StorePhone: getEnv("STORE_PHONE", "01 23 45 67 89"),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		UploadBaseURL: getEnv("UPLOAD_BASE_URL", "/uploads"),
		CartDir:       getEnv("CART_DIR", "./carts"),

		EnforceDiscountPricing: getEnvBool("ADMIN_ENFORCE_ORIGINAL_PRICE", false),
	}
}
