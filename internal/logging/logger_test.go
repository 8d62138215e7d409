package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleLoggerPrefixesLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(buf, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	logger.Warn("assuming gif format", "path", "out file.bin")
	logger.Debug("hidden")
	logger.Error("conversion failed", "error", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "WARN: assuming gif format path=\"out file.bin\"") {
		t.Fatalf("expected warn line, got: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line must be filtered without verbose, got: %s", out)
	}
	if !strings.Contains(out, "ERROR: conversion failed error=\"boom\"") {
		t.Fatalf("expected error line, got: %s", out)
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(buf, Options{Verbose: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.With("run", "abc").Debug("state change", "state", "converting")
	if !strings.Contains(buf.String(), "DEBUG: state change run=abc state=converting") {
		t.Fatalf("expected debug line, got: %s", buf.String())
	}
}

func TestJSONLoggerEmitsObjects(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(buf, Options{Format: "json"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Warn("fallback")

	var decoded map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["level"] != "WARN" || decoded["msg"] != "fallback" {
		t.Fatalf("unexpected record: %v", decoded)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestInstallSucceedsOnce(t *testing.T) {
	logger, err := New(&bytes.Buffer{}, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := Install(logger); err != nil {
		t.Fatalf("first install: %v", err)
	}
	if err := Install(logger); !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("expected ErrAlreadyInstalled, got %v", err)
	}
	if slog.Default() != logger {
		t.Fatalf("expected installed logger to be the slog default")
	}
}
