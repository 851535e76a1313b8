// Package store persiste los documentos de configuración JSON del copiador:
// config/clients.json (cuentas), general_settings.json y ui_state.json.
//
// El documento de clientes se reescribe completo en cada mutación, con
// escritura atómica y un contador de revisión contra escritores concurrentes
// (GUI y worker tocan el mismo archivo).
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MainAccount identifica la cuenta principal cuyas operaciones se copian.
// Puede estar vacía (aún sin configurar).
type MainAccount struct {
	AccountHash   string `json:"account_hash,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
}

// IsZero indica si la cuenta principal no está configurada.
func (m MainAccount) IsZero() bool {
	return m.AccountHash == "" && m.AccountNumber == ""
}

// ClientRecord es la configuración de una cuenta cliente (slave).
type ClientRecord struct {
	ID            string         `json:"id"`
	AccountHash   string         `json:"account_hash"`
	AccountNumber string         `json:"account_number"`
	Name          string         `json:"name"`
	Enabled       bool           `json:"enabled"`
	Settings      map[string]any `json:"settings"`
}

// UnmarshalJSON aplica los defaults del formato: enabled ausente cuenta
// como true, settings ausente queda como mapa vacío.
func (c *ClientRecord) UnmarshalJSON(b []byte) error {
	type alias ClientRecord
	aux := struct {
		Enabled *bool `json:"enabled"`
		*alias
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.Enabled == nil {
		c.Enabled = true
	} else {
		c.Enabled = *aux.Enabled
	}
	if c.Settings == nil {
		c.Settings = map[string]any{}
	}
	return nil
}

// Document es el documento completo de config/clients.json.
// NextID y Revision no existían en el formato original; se agregan para
// generación de IDs estable ante borrados y para detectar escrituras
// concurrentes. Los documentos viejos sin estos campos se normalizan al
// cargar.
type Document struct {
	MainAccount   MainAccount    `json:"main_account"`
	SlaveAccounts []ClientRecord `json:"slave_accounts"`
	NextID        int            `json:"next_id,omitempty"`
	Revision      int64          `json:"revision,omitempty"`
}

// DecodeDocument parsea el documento aceptando el formato legacy:
// una lista desnuda en la raíz se normaliza a {main_account:{}, slave_accounts:[...]}.
func DecodeDocument(b []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return normalize(&Document{}), nil
	}

	if trimmed[0] == '[' {
		var list []ClientRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode legacy clients list: %w", err)
		}
		return normalize(&Document{SlaveAccounts: list}), nil
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode clients document: %w", err)
	}
	return normalize(&doc), nil
}

// normalize completa los campos que el documento cargado pueda no traer.
func normalize(doc *Document) *Document {
	if doc.SlaveAccounts == nil {
		doc.SlaveAccounts = []ClientRecord{}
	}
	if doc.NextID <= 0 {
		doc.NextID = maxSlaveSeq(doc.SlaveAccounts) + 1
	}
	return doc
}

// maxSlaveSeq retorna el mayor N entre los ids slave_N presentes.
func maxSlaveSeq(clients []ClientRecord) int {
	max := 0
	for _, c := range clients {
		rest, ok := strings.CutPrefix(c.ID, "slave_")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return max
}

// Find retorna el índice del cliente con el id dado, o -1.
func (d *Document) Find(id string) int {
	for i := range d.SlaveAccounts {
		if d.SlaveAccounts[i].ID == id {
			return i
		}
	}
	return -1
}
