package catz

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// GZExt marks files that are read and written through gzip.
const GZExt = ".gz"

func IsGZ(path string) bool {
	return strings.HasSuffix(path, GZExt)
}

type FileWriter struct {
	f      *os.File
	gzw    *gzip.Writer
	w      io.Writer
	locked bool
	closed bool
}

type FileWriterConfig struct {
	CompressionLevel int
	Flag             int
	FilePerm         os.FileMode
	DirPerm          os.FileMode
}

// DefaultFileWriterConfig truncates: a rewritten artifact replaces the old one.
func DefaultFileWriterConfig() *FileWriterConfig {
	return &FileWriterConfig{
		CompressionLevel: gzip.BestCompression,
		Flag:             os.O_WRONLY | os.O_TRUNC | os.O_CREATE,
		FilePerm:         0660,
		DirPerm:          0770,
	}
}

// NewFileWriter opens path for writing, creating parent directories.
// Paths ending in .gz are gzip compressed.
func NewFileWriter(path string, config *FileWriterConfig) (*FileWriter, error) {
	if config == nil {
		config = DefaultFileWriterConfig()
	}
	if err := os.MkdirAll(filepath.Dir(path), config.DirPerm); err != nil {
		return nil, err
	}
	fi, err := os.OpenFile(path, config.Flag, config.FilePerm)
	if err != nil {
		return nil, err
	}
	g := &FileWriter{f: fi, w: fi}
	if IsGZ(path) {
		gzw, err := gzip.NewWriterLevel(fi, config.CompressionLevel)
		if err != nil {
			_ = fi.Close()
			return nil, err
		}
		g.gzw = gzw
		g.w = gzw
	}
	return g, nil
}

func (g *FileWriter) Write(p []byte) (int, error) {
	g.lock()
	return g.w.Write(p)
}

// lock locks the file for exclusive access.
// The lock will be invalidated if and when the file is closed.
func (g *FileWriter) lock() {
	if g.locked || g.closed || g.f == nil {
		return
	}
	_ = syscall.Flock(int(g.f.Fd()), syscall.LOCK_EX)
	g.locked = true
}

func (g *FileWriter) Close() error {
	if g.closed {
		return nil
	}
	defer func() {
		g.closed = true
	}()
	if g.gzw != nil {
		if err := g.gzw.Close(); err != nil {
			_ = g.f.Close()
			return err
		}
	}
	if err := g.f.Sync(); err != nil {
		_ = g.f.Close()
		return err
	}
	return g.f.Close()
}

func (g *FileWriter) Path() string {
	return g.f.Name()
}

type FileReader struct {
	f      *os.File
	gzr    *gzip.Reader
	r      io.Reader
	closed bool
}

// NewFileReader opens path for reading. Paths ending in .gz are decompressed.
func NewFileReader(path string) (*FileReader, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	g := &FileReader{f: fi, r: fi}
	if IsGZ(path) {
		gzr, err := gzip.NewReader(fi)
		if err != nil {
			_ = fi.Close()
			return nil, err
		}
		g.gzr = gzr
		g.r = gzr
	}
	return g, nil
}

func (g *FileReader) Path() string {
	return g.f.Name()
}

// Read satisfies the io.Reader interface.
func (g *FileReader) Read(p []byte) (int, error) {
	return g.r.Read(p)
}

// Close satisfies the io.Closer interface.
// It closes the gzip reader, if any, and the file.
func (g *FileReader) Close() error {
	if g.closed {
		return nil
	}
	defer func() {
		g.closed = true
	}()
	if g.gzr != nil {
		if err := g.gzr.Close(); err != nil {
			_ = g.f.Close()
			return err
		}
	}
	return g.f.Close()
}

func ReadFile(path string) ([]byte, error) {
	r, err := NewFileReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func WriteFile(path string, data []byte, config *FileWriterConfig) error {
	w, err := NewFileWriter(path, config)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// CopyFile copies src to dst, keeping the mode and modification time of src.
// Content is copied as is, compressed or not.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0770); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
