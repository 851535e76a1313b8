// Package registry implementa el CRUD de cuentas cliente sobre el
// documento config/clients.json. Cada mutación hace un ciclo completo
// read-modify-write contra el store y persiste antes de retornar.
package registry

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/observability/logger"
	"github.com/leozex777/syncschwab/internal/store"
)

// ErrClientNotFound indica que el id no existe en el registro.
// Toggle lo usa para distinguir "no encontrado" de "ahora deshabilitado".
var ErrClientNotFound = errors.New("registry: client not found")

// Registry gestiona las cuentas cliente y la cuenta principal.
type Registry struct {
	store *store.FileStore
	log   *zap.Logger
}

func New(fs *store.FileStore) *Registry {
	return &Registry{store: fs, log: logger.Named("registry")}
}

// Add crea un cliente nuevo, habilitado por defecto, y persiste.
// El id sale del contador monotónico del documento (slave_N no se
// reusa aunque haya borrados intercalados).
func (r *Registry) Add(ctx context.Context, accountHash, accountNumber, name string, settings map[string]any) (store.ClientRecord, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return store.ClientRecord{}, err
	}

	if settings == nil {
		settings = map[string]any{}
	}

	client := store.ClientRecord{
		ID:            fmt.Sprintf("slave_%d", doc.NextID),
		AccountHash:   accountHash,
		AccountNumber: accountNumber,
		Name:          name,
		Enabled:       true,
		Settings:      settings,
	}
	doc.NextID++
	doc.SlaveAccounts = append(doc.SlaveAccounts, client)

	if err := r.store.Save(ctx, doc); err != nil {
		return store.ClientRecord{}, err
	}

	r.log.Info("client added", zap.String("id", client.ID), zap.String("name", name))
	return client, nil
}

// Remove elimina un cliente. Es idempotente: un id ausente no es error.
func (r *Registry) Remove(ctx context.Context, id string) error {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := doc.SlaveAccounts[:0]
	for _, c := range doc.SlaveAccounts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	doc.SlaveAccounts = kept

	if err := r.store.Save(ctx, doc); err != nil {
		return err
	}

	r.log.Info("client removed", zap.String("id", id))
	return nil
}

// Update aplica updates al cliente. La key "settings" se mergea en el
// mapa existente, nunca lo reemplaza completo; el resto de las keys
// sobreescriben el atributo directamente.
func (r *Registry) Update(ctx context.Context, id string, updates map[string]any) error {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return err
	}

	i := doc.Find(id)
	if i < 0 {
		return ErrClientNotFound
	}

	c := &doc.SlaveAccounts[i]
	for key, value := range updates {
		switch key {
		case "settings":
			patch, ok := value.(map[string]any)
			if !ok {
				continue
			}
			if c.Settings == nil {
				c.Settings = map[string]any{}
			}
			for k, v := range patch {
				c.Settings[k] = v
			}
		case "name":
			if s, ok := value.(string); ok {
				c.Name = s
			}
		case "account_hash":
			if s, ok := value.(string); ok {
				c.AccountHash = s
			}
		case "account_number":
			if s, ok := value.(string); ok {
				c.AccountNumber = s
			}
		case "enabled":
			if b, ok := value.(bool); ok {
				c.Enabled = b
			}
		}
	}

	if err := r.store.Save(ctx, doc); err != nil {
		return err
	}

	r.log.Info("client updated", zap.String("id", id))
	return nil
}

// Toggle invierte enabled y persiste. Retorna el nuevo estado.
// Un id ausente retorna ErrClientNotFound (no se confunde con
// "ahora deshabilitado").
func (r *Registry) Toggle(ctx context.Context, id string) (bool, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return false, err
	}

	i := doc.Find(id)
	if i < 0 {
		return false, ErrClientNotFound
	}

	doc.SlaveAccounts[i].Enabled = !doc.SlaveAccounts[i].Enabled
	enabled := doc.SlaveAccounts[i].Enabled

	if err := r.store.Save(ctx, doc); err != nil {
		return false, err
	}

	r.log.Info("client toggled", zap.String("id", id), zap.Bool("enabled", enabled))
	return enabled, nil
}

// Get retorna el cliente con el id dado.
func (r *Registry) Get(ctx context.Context, id string) (store.ClientRecord, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return store.ClientRecord{}, err
	}
	i := doc.Find(id)
	if i < 0 {
		return store.ClientRecord{}, ErrClientNotFound
	}
	return doc.SlaveAccounts[i], nil
}

// List retorna todos los clientes en orden de creación.
func (r *Registry) List(ctx context.Context) ([]store.ClientRecord, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.SlaveAccounts, nil
}

// Enabled retorna solo los clientes habilitados, preservando el orden.
func (r *Registry) Enabled(ctx context.Context) ([]store.ClientRecord, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]store.ClientRecord, 0, len(doc.SlaveAccounts))
	for _, c := range doc.SlaveAccounts {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out, nil
}

// MainAccount retorna la cuenta principal (puede estar vacía).
func (r *Registry) MainAccount(ctx context.Context) (store.MainAccount, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return store.MainAccount{}, err
	}
	return doc.MainAccount, nil
}

// SetMainAccount reemplaza la cuenta principal completa y persiste.
func (r *Registry) SetMainAccount(ctx context.Context, accountHash, accountNumber string) error {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return err
	}

	doc.MainAccount = store.MainAccount{
		AccountHash:   accountHash,
		AccountNumber: accountNumber,
	}

	if err := r.store.Save(ctx, doc); err != nil {
		return err
	}

	r.log.Info("main account set", zap.String("account_number", accountNumber))
	return nil
}
