package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/kudiwallet/kudiwallet/docs"
	apikeyhandlers "github.com/kudiwallet/kudiwallet/internal/handlers/apikeys"
	authhandlers "github.com/kudiwallet/kudiwallet/internal/handlers/auth"
	wallethandlers "github.com/kudiwallet/kudiwallet/internal/handlers/wallet"
	"github.com/kudiwallet/kudiwallet/internal/service"
	"github.com/kudiwallet/kudiwallet/pkg/auth"
)

type AuthHandler interface {
	GoogleLogin(w http.ResponseWriter, r *http.Request)
	GoogleCallback(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	Deposit(w http.ResponseWriter, r *http.Request)
	PaystackWebhook(w http.ResponseWriter, r *http.Request)
	DepositStatus(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	Transfer(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type APIKeyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Rollover(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler   AuthHandler
	WalletHandler WalletHandler
	APIKeyHandler APIKeyHandler

	authn *auth.Authenticator
}

func New(s *service.Services, authn *auth.Authenticator) *Handlers {
	return &Handlers{
		AuthHandler:   authhandlers.New(s.AuthService),
		WalletHandler: wallethandlers.New(s.WalletService),
		APIKeyHandler: apikeyhandlers.New(s.APIKeyService),
		authn:         authn,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/auth/google", func(r chi.Router) {
		r.Get("/", h.AuthHandler.GoogleLogin)
		r.Get("/callback", h.AuthHandler.GoogleCallback)
	})
	r.Route("/api", func(r chi.Router) {
		// The webhook is authenticated by its signature, not by a user.
		r.Post("/wallet/paystack/webhook", h.WalletHandler.PaystackWebhook)

		r.Group(func(r chi.Router) {
			r.Use(h.authn.Middleware)
			r.Route("/wallet", func(r chi.Router) {
				r.With(auth.RequirePermission("deposit")).Post("/deposit", h.WalletHandler.Deposit)
				r.With(auth.RequirePermission("read")).Get("/deposit/{reference}/status", h.WalletHandler.DepositStatus)
				r.With(auth.RequirePermission("read")).Get("/balance", h.WalletHandler.GetBalance)
				r.With(auth.RequirePermission("transfer")).Post("/transfer", h.WalletHandler.Transfer)
				r.With(auth.RequirePermission("read")).Get("/transactions", h.WalletHandler.GetTransactions)
			})
			r.Route("/keys", func(r chi.Router) {
				r.Post("/create", h.APIKeyHandler.Create)
				r.Post("/rollover", h.APIKeyHandler.Rollover)
			})
		})
	})

	return r
}
