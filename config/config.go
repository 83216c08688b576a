package config

import "time"

type Config struct {
	Web      Web
	DB       DB
	Cors     Cors
	Session  Session
	Checkout Checkout
	Rate     Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:5000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

// DB points at the hosted PostgreSQL instance that owns the catalog table.
// Password is the access key handed out by the provider.
type DB struct {
	Host         string `conf:"default:localhost:5432"`
	User         string `conf:"default:postgres"`
	Password     string `conf:"default:postgres,mask"`
	Name         string `conf:"default:postgres"`
	DisableTLS   bool   `conf:"default:false"`
	MaxIdleConns int    `conf:"default:2"`
	MaxOpenConns int    `conf:"default:10"`
	Migrate      bool   `conf:"default:false"`
}

// Cors.Origin is the frontend URL allowed to call the gateway with credentials.
type Cors struct {
	Origin string
}

type Session struct {
	Lifetime     time.Duration `conf:"default:24h"`
	CookieName   string        `conf:"default:hotwheels_session"`
	CookieSecure bool          `conf:"default:false"`
}

type Checkout struct {
	SubmitDelay time.Duration `conf:"default:2s"`
}

type Rate struct {
	Enabled bool          `conf:"default:true"`
	Burst   int           `conf:"default:60"`
	RPS     float64       `conf:"default:30"`
	Expiry  time.Duration `conf:"default:10m"`
}
