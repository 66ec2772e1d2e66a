package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWritesReport(t *testing.T) {
	dir := t.TempDir()
	words := writeFile(t, dir, "kbbi.txt", "saya\nmakan\nrumah\n")
	doc := writeFile(t, dir, "essay.txt", "Saya makan di rumahku.")

	var out bytes.Buffer
	err := run(context.Background(), []string{"-words", words, "-db", "", "-redis", "", doc}, &out)
	if err != nil {
		t.Fatal(err)
	}
	want := "di -> Tidak ada rekomendasi\nrumahku -> rumah\n"
	if out.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestRunClosesStoreOnError(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ejaan.db")

	// the document is missing, so run fails after opening the database
	err := run(context.Background(), []string{"-db", dbPath, "-redis", "", filepath.Join(dir, "missing.txt")}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for missing document")
	}

	// sqlite removes the write-ahead log when the last connection closes
	if _, err := os.Stat(dbPath + "-wal"); !os.IsNotExist(err) {
		t.Errorf("database left open after failed run: %v", err)
	}
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), nil, &out); !errors.Is(err, errUsage) {
		t.Errorf("got %v, want usage error", err)
	}
	if err := run(context.Background(), []string{"-format", "xml", "a.txt"}, &out); err == nil || errors.Is(err, errUsage) {
		t.Errorf("bad format: got %v", err)
	}
}
