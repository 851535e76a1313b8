package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leozex777/syncschwab/internal/util/atomicwrite"
)

// ReadJSONFile lee y decodifica un archivo JSON.
// Un archivo ausente no es error: deja v sin tocar y retorna ok=false.
func ReadJSONFile(path string, v any) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// WriteJSONFile serializa v con indentación y lo escribe de forma atómica.
func WriteJSONFile(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return atomicwrite.AtomicWriteFile(path, b, 0o644)
}
