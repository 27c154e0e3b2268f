// Package storage implementa el almacenamiento local de archivos (fotos de
// perfil y documentos de obra). Las claves son rutas relativas al BaseDir.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore almacenamiento en disco local.
type FileStore struct {
	baseDir string
}

// NewFileStore construye el almacenamiento sobre baseDir, creándolo si no existe.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio base: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Save escribe el contenido bajo la clave y la devuelve.
func (s *FileStore) Save(_ context.Context, key string, r io.Reader) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: crear archivo: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("storage: escribir archivo: %w", err)
	}
	return key, nil
}

// Destroy elimina el archivo de la clave. Una clave ya inexistente no es
// error: el outbox de borrados puede reintentar.
func (s *FileStore) Destroy(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: eliminar archivo: %w", err)
	}
	return nil
}

// resolve convierte la clave en ruta absoluta, rechazando escapes del BaseDir.
func (s *FileStore) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("storage: clave inválida: %s", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}
