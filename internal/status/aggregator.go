// Package status consolida el estado de autorización de todas las cuentas:
// presencia de credenciales (.env) + validez del refresh token por archivo.
// Todo es de solo lectura; los resultados se retornan, no se guardan.
package status

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/config"
	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/registry"
	"github.com/leozex777/syncschwab/internal/token"
)

// AccountStatus es el estado de autorización de una cuenta.
type AccountStatus struct {
	ClientID      string `json:"client_id,omitempty"`
	ClientName    string `json:"client_name,omitempty"`
	CredentialsOK bool   `json:"credentials_ok"`
	HasToken      bool   `json:"has_token"`
	IsValid       bool   `json:"is_valid"`
	NeedsAuth     bool   `json:"needs_auth"`
	IsEnabled     bool   `json:"is_enabled,omitempty"`
	Message       string `json:"message"`
}

// Aggregate es la vista consolidada del dashboard de autorización.
type Aggregate struct {
	Main              AccountStatus   `json:"main"`
	Clients           []AccountStatus `json:"clients"`
	TotalClients      int             `json:"total_clients"`
	AuthorizedClients int             `json:"authorized_clients"`
	NeedsAuthClients  int             `json:"needs_auth_clients"`
}

// Aggregator combina credenciales de entorno con el token checker.
type Aggregator struct {
	cfg     *config.Config
	checker *token.Checker
	log     *zap.Logger
}

func NewAggregator(cfg *config.Config, checker *token.Checker) *Aggregator {
	return &Aggregator{
		cfg:     cfg,
		checker: checker,
		log:     logger.Named("status"),
	}
}

// CheckMain evalúa la cuenta principal (prefijo MAIN en .env,
// tokens/main_tokens.json).
func (a *Aggregator) CheckMain() AccountStatus {
	return a.checkAccount("main", "")
}

// CheckClient evalúa una cuenta cliente por id.
func (a *Aggregator) CheckClient(clientID, clientName string) AccountStatus {
	st := a.checkAccount(clientID, clientName)
	st.ClientID = clientID
	st.ClientName = clientName
	return st
}

// checkAccount corre la cadena: credenciales → archivo de tokens → validez.
// Cada paso corta en seco: sin credenciales no se toca el filesystem.
func (a *Aggregator) checkAccount(accountID, name string) AccountStatus {
	result := AccountStatus{NeedsAuth: true}

	prefix := strings.ToUpper(accountID)
	keyID := os.Getenv(prefix + "_KEY_ID")
	clientSecret := os.Getenv(prefix + "_CLIENT_SECRET")
	accountNumber := os.Getenv(prefix + "_ACCOUNT_NUMBER")

	if keyID == "" || clientSecret == "" || accountNumber == "" {
		result.Message = "❌ Credentials not found in .env"
		a.log.Warn("credentials not found in .env", zap.String("account", accountID))
		return result
	}
	result.CredentialsOK = true

	tokenFile := a.cfg.TokensFile(accountID)
	if _, err := os.Stat(tokenFile); err != nil {
		result.Message = "❌ Token not found"
		a.log.Debug("token file not found", zap.String("account", accountID))
		return result
	}

	ts := a.checker.Check(tokenFile)
	result.HasToken = ts.HasToken
	result.IsValid = ts.IsValid
	result.NeedsAuth = ts.NeedsAuth
	result.Message = ts.Message

	a.log.Debug("account token status",
		zap.String("account", accountID), zap.Bool("valid", result.IsValid))
	return result
}

// CheckAll evalúa la cuenta principal y todos los clientes del registro,
// con los contadores del dashboard.
func (a *Aggregator) CheckAll(ctx context.Context, reg *registry.Registry) (Aggregate, error) {
	clients, err := reg.List(ctx)
	if err != nil {
		return Aggregate{}, err
	}

	agg := Aggregate{
		Main:    a.CheckMain(),
		Clients: make([]AccountStatus, 0, len(clients)),
	}

	for _, c := range clients {
		st := a.CheckClient(c.ID, c.Name)
		st.IsEnabled = c.Enabled
		agg.Clients = append(agg.Clients, st)

		if st.IsValid {
			agg.AuthorizedClients++
		}
		if st.NeedsAuth {
			agg.NeedsAuthClients++
		}
	}
	agg.TotalClients = len(agg.Clients)

	a.log.Debug("token check complete",
		zap.Bool("main_valid", agg.Main.IsValid),
		zap.Int("authorized", agg.AuthorizedClients),
		zap.Int("total", agg.TotalClients))
	return agg, nil
}
