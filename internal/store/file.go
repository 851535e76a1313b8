package store

import (
	"context"
	"errors"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/leozex777/syncschwab/internal/cache"
	"github.com/leozex777/syncschwab/internal/observability/logger"
)

// ErrRevisionConflict indica que otro proceso escribió el documento entre
// nuestro load y nuestro save. El caller debe recargar y reintentar la
// mutación en vez de pisar silenciosamente la escritura ajena.
var ErrRevisionConflict = errors.New("store: document revision conflict")

const clientsCacheKey = "config:clients"

// FileStore persiste el documento de clientes en un archivo JSON,
// fronteado por el cache read-through.
type FileStore struct {
	path  string
	mu    sync.Mutex
	cache cache.Client
	log   *zap.Logger
}

// NewFileStore crea el store sobre el archivo dado.
func NewFileStore(path string, c cache.Client) *FileStore {
	return &FileStore{
		path:  path,
		cache: c,
		log:   logger.Named("store"),
	}
}

// Path retorna la ruta del archivo respaldado.
func (s *FileStore) Path() string { return s.path }

// Load retorna el documento, desde cache si está poblado.
// Un archivo ausente o corrupto resuelve a un documento vacío (recuperación
// local, no error): el formato viejo sin estructura se tolera igual.
func (s *FileStore) Load(ctx context.Context) (*Document, error) {
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, clientsCacheKey); err == nil {
			if doc, derr := DecodeDocument(b); derr == nil {
				return doc, nil
			}
		}
	}

	doc, raw := s.loadDisk()
	if s.cache != nil && raw != nil {
		if err := s.cache.Set(ctx, clientsCacheKey, raw, 0); err != nil {
			s.log.Debug("cache set failed", zap.Error(err))
		}
	}
	return doc, nil
}

// Reload descarta el cache y relee desde disco.
func (s *FileStore) Reload(ctx context.Context) (*Document, error) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, clientsCacheKey)
	}
	return s.Load(ctx)
}

// loadDisk lee el archivo directamente. Corrupto o ausente → documento vacío.
func (s *FileStore) loadDisk() (*Document, []byte) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("clients file unreadable, using empty document",
				zap.String("path", s.path), zap.Error(err))
		}
		return normalize(&Document{}), nil
	}

	doc, err := DecodeDocument(b)
	if err != nil {
		s.log.Warn("clients file malformed, using empty document",
			zap.String("path", s.path), zap.Error(err))
		return normalize(&Document{}), nil
	}
	return doc, b
}

// Save escribe el documento completo de forma atómica y refresca el cache.
// Chequea la revisión contra lo que hay en disco: si no coincide con la del
// documento dado, otro escritor ganó y se retorna ErrRevisionConflict.
func (s *FileStore) Save(ctx context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := s.loadDisk()
	if current.Revision != doc.Revision {
		return ErrRevisionConflict
	}

	doc.Revision++
	if err := WriteJSONFile(s.path, doc); err != nil {
		doc.Revision--
		return err
	}

	if s.cache != nil {
		b, err := os.ReadFile(s.path)
		if err == nil {
			if cerr := s.cache.Set(ctx, clientsCacheKey, b, 0); cerr != nil {
				s.log.Debug("cache refresh failed", zap.Error(cerr))
			}
		} else {
			_ = s.cache.Delete(ctx, clientsCacheKey)
		}
	}

	s.log.Debug("clients document saved",
		zap.Int64("revision", doc.Revision),
		zap.Int("clients", len(doc.SlaveAccounts)))
	return nil
}
