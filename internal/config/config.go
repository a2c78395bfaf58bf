package config

import "github.com/spf13/viper"

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Admin   AdminConfig
	Payment PaymentConfig
	Orderd  OrderdConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port int
	// PublicURL is the externally reachable base of the storefront, used to
	// build the hosted-checkout return URL.
	PublicURL string
}

type BackendConfig struct {
	BaseURL string
}

type AdminConfig struct {
	Secret     string
	OrderLimit int
}

type PaymentConfig struct {
	// Mode selects the payment confirmation strategy: "stub" simulates the
	// confirmation locally, "redirect" hands off to a hosted checkout page.
	Mode        string
	CheckoutURL string
}

type OrderdConfig struct {
	Port           int
	WhatsAppNumber string
}

type LogConfig struct {
	Level string
}

const (
	PaymentModeStub     = "stub"
	PaymentModeRedirect = "redirect"
)

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_PUBLIC_URL", "http://localhost:8080")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8001")
	viper.SetDefault("ADMIN_SECRET", "songsnap2024")
	viper.SetDefault("ADMIN_ORDER_LIMIT", 50)
	viper.SetDefault("PAYMENT_MODE", PaymentModeStub)
	viper.SetDefault("PAYMENT_CHECKOUT_URL", "https://buy.stripe.com/test_songsnap")
	viper.SetDefault("ORDERD_PORT", 8001)
	viper.SetDefault("WHATSAPP_NUMBER", "+1234567890")
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:      viper.GetInt("SERVER_PORT"),
			PublicURL: viper.GetString("SERVER_PUBLIC_URL"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
		},
		Admin: AdminConfig{
			Secret:     viper.GetString("ADMIN_SECRET"),
			OrderLimit: viper.GetInt("ADMIN_ORDER_LIMIT"),
		},
		Payment: PaymentConfig{
			Mode:        viper.GetString("PAYMENT_MODE"),
			CheckoutURL: viper.GetString("PAYMENT_CHECKOUT_URL"),
		},
		Orderd: OrderdConfig{
			Port:           viper.GetInt("ORDERD_PORT"),
			WhatsAppNumber: viper.GetString("WHATSAPP_NUMBER"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
