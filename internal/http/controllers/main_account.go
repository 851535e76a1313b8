package controllers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/config"
	httperr "github.com/leozex777/syncschwab/internal/http/errors"
	"github.com/leozex777/syncschwab/internal/http/dto"
	"github.com/leozex777/syncschwab/internal/http/helpers"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/refresher"
	"github.com/leozex777/syncschwab/internal/registry"
)

// MainAccountController maneja la cuenta principal.
type MainAccountController struct {
	Registry *registry.Registry
	Config   *config.Config
	log      *zap.Logger
}

func NewMainAccountController(reg *registry.Registry, cfg *config.Config) *MainAccountController {
	return &MainAccountController{
		Registry: reg,
		Config:   cfg,
		log:      logger.Named("http.main_account"),
	}
}

// Get maneja GET /v1/main-account. Si el registro no tiene el hash,
// se intenta el account cache como fuente de fallback.
func (c *MainAccountController) Get(w http.ResponseWriter, r *http.Request) {
	main, err := c.Registry.MainAccount(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := dto.MainAccountResponse{
		AccountHash:   main.AccountHash,
		AccountNumber: main.AccountNumber,
		Configured:    !main.IsZero(),
	}

	if resp.AccountHash == "" {
		if cached := refresher.CachedMainAccountHash(c.Config); cached != "" {
			resp.AccountHash = cached
			resp.FromCache = true
		}
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Put maneja PUT /v1/main-account: reemplazo completo.
func (c *MainAccountController) Put(w http.ResponseWriter, r *http.Request) {
	var req dto.MainAccountRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.AccountHash == "" || req.AccountNumber == "" {
		httperr.WriteError(w, httperr.ErrMissingFields.
			WithDetail("account_hash y account_number son requeridos"))
		return
	}

	if err := c.Registry.SetMainAccount(r.Context(), req.AccountHash, req.AccountNumber); err != nil {
		writeDomainError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.MainAccountResponse{
		AccountHash:   req.AccountHash,
		AccountNumber: req.AccountNumber,
		Configured:    true,
	})
}
